// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

// Config holds the knobs of the pass. It is read once at pipeline
// start and threaded explicitly through the selector, normalizer, and
// transform; no component reads ambient option state.
type Config struct {
	// CountThreshold is the minimum call count to optimize a memory
	// operation call site.
	CountThreshold uint64 `yaml:"count-threshold"`

	// PercentThreshold is the percentage of the still-unclaimed count
	// a record must reach to be worth a version.
	PercentThreshold uint64 `yaml:"percent-threshold"`

	// MaxVersion caps the number of specialized versions per site.
	// 0 means unlimited.
	MaxVersion int `yaml:"max-version"`

	// ScaleCounts rescales the profile counts using the block count
	// value, correcting drift introduced by earlier transformations.
	ScaleCounts bool `yaml:"scale-counts"`

	// Disable turns the whole pass off. For debug purposes.
	Disable bool `yaml:"disable"`

	// OptMemcmpBcmp enables size-specializing memcmp and bcmp calls.
	OptMemcmpBcmp bool `yaml:"optimize-memcmp-bcmp"`

	// MaxOptSize bounds the sizes worth specializing.
	MaxOptSize int64 `yaml:"max-opt-size"`
}

// DefaultConfig returns the default pass configuration.
func DefaultConfig() Config {
	return Config{
		CountThreshold:   1000,
		PercentThreshold: 40,
		MaxVersion:       3,
		ScaleCounts:      true,
		OptMemcmpBcmp:    true,
		MaxOptSize:       128,
	}
}

// maxSingleValueRange is the first size the profile writer no longer
// tracks individually; everything from here up lands in one bucket.
const maxSingleValueRange = 513

// singleValueRange reports whether v is a size the profile tracks
// individually: small values exactly, then only powers of two until
// the large-size bucket takes over. Other values stand for a bucketed
// range of sizes and cannot be specialized to a single constant.
func singleValueRange(v int64) bool {
	if v < 0 {
		return false
	}
	if v <= 8 {
		return true
	}
	if v >= maxSingleValueRange {
		return false
	}
	return v&(v-1) == 0
}
