// Package catalog talks to the remote asset catalogs.
//
// Two sources serve asset bodies: the public catalog, reachable without
// credentials, and the private catalog, which requires a bearer token and
// only serves assets the user owns. Sources.For picks the right one for a
// header. The public catalog also lists asset headers and packs.
package catalog
