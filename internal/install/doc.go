// Package install drives an asset installation from a user's selection to
// objects in the project.
//
// An Orchestrator runs one installation at a time. For each request it
// fetches the asset bodies, resolves the extensions they need, asks the
// user before upgrading out-of-date extensions, installs the extensions,
// instantiates the assets, queues their resources for retrieval and
// reports one telemetry event per installed asset. Collaborators are
// injected through Config, so every stage can be replaced in tests.
package install
