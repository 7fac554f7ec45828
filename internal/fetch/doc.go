// Package fetch retrieves the full bodies of several assets at once.
//
// Retrievals fan out over a bounded pool of at most MaxConcurrency workers.
// Every retrieval runs to completion; the outcomes are then folded in input
// order into either the complete list of bodies or the first failure.
package fetch
