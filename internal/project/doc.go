// Package project holds the mutable project store targeted by installations:
// installed extension records, the global objects container, per-layout
// objects containers and the resource list. A project is read from and
// written back to a YAML file (project.yaml) by its owner; the installation
// pipeline only appends to it.
package project
