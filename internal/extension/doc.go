// Package extension installs and upgrades the extensions recorded in a
// project, using the descriptions published in the extension registry.
package extension
