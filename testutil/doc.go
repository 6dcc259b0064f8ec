// Package testutil provides testing utilities for renderstream.
//
// This package is intended for use in tests and benchmarks only.
// It provides in-memory fakes of the component system contracts and a
// seeded random generator for randomized add/remove sequences.
//
// # Fakes
//
//	tex := testutil.NewTexture(1)
//	c := testutil.NewComponent(10).
//	    WithBounds(testutil.BoxAt(0, 0, 0, 1)).
//	    WithInfo(tex, 5)
//
// # Random Sequences
//
//	rng := testutil.NewRNG(seed)
//	if rng.Intn(2) == 0 { ... }
package testutil
