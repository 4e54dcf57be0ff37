package engine

import "sort"

// Counts tallies each distinct value of column. Values are taken verbatim:
// no trimming, no case folding.
func Counts(column []string) *FrequencyMap {
	fm := NewFrequencyMap()
	for _, v := range column {
		fm.Add(v, 1)
	}
	return fm
}

// ItemsVK inverts fm into (count, code) pairs in fm's key order.
func ItemsVK(fm *FrequencyMap) []CountPair {
	pairs := make([]CountPair, 0, fm.Len())
	for _, k := range fm.keys {
		pairs = append(pairs, CountPair{Count: fm.counts[k], Code: k})
	}
	return pairs
}

// Collapse sums pairs back into a FrequencyMap keyed by code.
func Collapse(pairs []CountPair) *FrequencyMap {
	fm := NewFrequencyMap()
	for _, p := range pairs {
		fm.Add(p.Code, p.Count)
	}
	return fm
}

// SortDescending orders pairs largest first, comparing count and then code.
func SortDescending(pairs []CountPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Code > pairs[j].Code
	})
}
