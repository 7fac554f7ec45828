// Package config manages user-level settings stored at ~/.assetctl/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the catalog and registry endpoints, the private catalog token and the fetch
// concurrency used by the installation pipeline.
package config
