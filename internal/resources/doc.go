// Package resources retrieves the files of resources queued by asset
// installations and stores them next to the project.
package resources
