// Package registry resolves the extensions required by a set of assets
// against the remote extension registry.
//
// The registry lists every published extension with its latest version.
// A Resolver compares that snapshot with the versions installed in a
// project and produces a Report: the extensions the assets need and the
// subset whose installed version is older than the published one.
// Resolution never mutates the project.
package registry
