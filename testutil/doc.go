// Package testutil provides testing utilities for voxgo.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	buf := rng.Bytes(4096)          // uniform random bytes
//	rng.FillRuns(buf, 2, 64)        // homogeneous runs (sparse terrain)
//
// # Reference Shapes
//
//	testutil.InSphere(p, centre, radius) // solid-sphere membership test
package testutil
