// Package testutil provides testing utilities for tfrec.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Feature Sets
//
//	rng := testutil.NewRNG(seed)
//	set := rng.FeatureSet(8, 16)   // 8 fields, lists of up to 16 elements
//	sets := rng.FeatureSets(100, 8, 16)
//
// # Corruption
//
//	bad := testutil.FlipBit(data, 17) // copy of data with bit 17 inverted
package testutil
