// Package installer instantiates fetched assets into a project.
//
// Each asset is installed atomically: its objects are added to the target
// container and its resources are queued on the project, and a failure
// part-way removes everything that asset added. A batch stops at the first
// failing asset; the assets before it stay installed.
package installer
