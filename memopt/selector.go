// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memopt

import "github.com/fkuehnel/memopsize/ssa"

// A candidate is one size chosen for specialization, with its scaled
// count.
type candidate struct {
	size  int64
	count uint64
}

// A candidateSet is the outcome of selection over one site's records.
//
// Invariant: defaultCount + sum of candidate counts == the normalized
// total the selector was given.
type candidateSet struct {
	cands        []candidate
	defaultCount uint64 // scaled count not claimed by any candidate
	savedRemain  uint64 // raw (unscaled) count not claimed; feeds the residual profile
	maxCount     uint64 // largest case count, default included; weight scale basis
	sumForOpt    uint64 // scaled count covered by the candidates
}

// isProfitable applies the two-part profitability test: an absolute
// count floor, and a percentage of the count still unclaimed. Records
// arrive sorted by descending count, so the percentage test only
// tightens as candidates are claimed; the first failure ends the scan.
func isProfitable(cfg *Config, count, remain uint64) bool {
	if count > remain {
		panic("value profile record count exceeds remaining total")
	}
	if count < cfg.CountThreshold {
		return false
	}
	if count < remain*cfg.PercentThreshold/100 {
		return false
	}
	return true
}

// selectCandidates scans the records in order and picks the sizes
// worth a specialized version. total is the (possibly normalized)
// count the percentages run against; savedTotal is the raw profile
// total, tracked in parallel so the residual annotation keeps
// unscaled numbers. Returns false if no record qualifies.
func selectCandidates(cfg *Config, recs []ssa.SizeRecord, total, savedTotal uint64) (candidateSet, bool) {
	remain := total
	savedRemain := savedTotal
	var cands []candidate
	maxCount := uint64(0)

	for _, vd := range recs {
		c := vd.Count
		if cfg.ScaleCounts {
			c = scaledCount(c, total, savedTotal)
		}

		// Bucketed or oversized records cannot become a constant-size
		// version; skip them but keep scanning.
		if !singleValueRange(vd.Size) || vd.Size > cfg.MaxOptSize {
			continue
		}

		// Records are sorted on the count. Break at the first
		// un-profitable value.
		if !isProfitable(cfg, c, remain) {
			break
		}

		cands = append(cands, candidate{size: vd.Size, count: c})
		if c > maxCount {
			maxCount = c
		}
		remain -= c
		if savedRemain < vd.Count {
			panic("value profile record count exceeds raw remaining total")
		}
		savedRemain -= vd.Count

		if cfg.MaxVersion != 0 && len(cands) >= cfg.MaxVersion {
			break
		}
	}

	if len(cands) == 0 {
		return candidateSet{}, false
	}

	if remain > maxCount {
		maxCount = remain
	}
	return candidateSet{
		cands:        cands,
		defaultCount: remain,
		savedRemain:  savedRemain,
		maxCount:     maxCount,
		sumForOpt:    total - remain,
	}, true
}
