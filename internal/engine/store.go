package engine

// FrequencyMap counts occurrences per value and remembers the order in which
// values were first seen. Go maps don't keep insertion order, so the order
// lives in its own slice.
type FrequencyMap struct {
	keys   []string
	counts map[string]int
}

func NewFrequencyMap() *FrequencyMap {
	return &FrequencyMap{counts: make(map[string]int)}
}

// Add bumps key by n, registering it on first sight.
func (fm *FrequencyMap) Add(key string, n int) {
	if _, ok := fm.counts[key]; !ok {
		fm.keys = append(fm.keys, key)
	}
	fm.counts[key] += n
}

// Keys returns keys in first-occurrence order.
func (fm *FrequencyMap) Keys() []string {
	out := make([]string, len(fm.keys))
	copy(out, fm.keys)
	return out
}

func (fm *FrequencyMap) Count(key string) (int, bool) {
	n, ok := fm.counts[key]
	return n, ok
}

func (fm *FrequencyMap) Len() int { return len(fm.keys) }

// Total is the sum of all counts, i.e. the length of the counted column.
func (fm *FrequencyMap) Total() int {
	total := 0
	for _, n := range fm.counts {
		total += n
	}
	return total
}

// LookupMap maps a program code to its program name.
type LookupMap map[string]string

// CountPair is an inverted FrequencyMap entry: (count, code).
type CountPair struct {
	Count int
	Code  string
}
