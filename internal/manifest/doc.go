// Package manifest handles parsing and validation of asset bodies fetched
// from the asset catalogs or read from local files. Bodies are checked
// against the embedded JSON Schema before any object is instantiated.
package manifest
