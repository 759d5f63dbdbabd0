package markduplicates

import (
	"sort"

	"github.com/biogo/store/llrb"
)

// histogramBin is one key of a Histogram and its count.
type histogramBin struct {
	key   int
	count int64
}

// Compare implements llrb.Comparable.
func (b *histogramBin) Compare(c llrb.Comparable) int {
	return b.key - c.(*histogramBin).key
}

// Bin is a key of a Histogram and the number of times it was
// incremented.
type Bin struct {
	Key   int
	Count int64
}

// Histogram counts occurrences of integer keys. Keys are kept in
// ascending order.
type Histogram struct {
	bins llrb.Tree
}

// Increment adds one to the count of key.
func (h *Histogram) Increment(key int) {
	h.add(key, 1)
}

func (h *Histogram) add(key int, n int64) {
	if c := h.bins.Get(&histogramBin{key: key}); c != nil {
		c.(*histogramBin).count += n
		return
	}
	h.bins.Insert(&histogramBin{key: key, count: n})
}

// Get returns the count of key, 0 if key was never incremented.
func (h *Histogram) Get(key int) int64 {
	if c := h.bins.Get(&histogramBin{key: key}); c != nil {
		return c.(*histogramBin).count
	}
	return 0
}

// Len returns the number of distinct keys.
func (h *Histogram) Len() int {
	return h.bins.Len()
}

// Bins returns the histogram's bins in ascending key order.
func (h *Histogram) Bins() []Bin {
	bins := make([]Bin, 0, h.bins.Len())
	h.bins.Do(func(c llrb.Comparable) bool {
		b := c.(*histogramBin)
		bins = append(bins, Bin{Key: b.key, Count: b.count})
		return false
	})
	return bins
}

// Sum returns the sum of all counts.
func (h *Histogram) Sum() int64 {
	var sum int64
	for _, b := range h.Bins() {
		sum += b.Count
	}
	return sum
}

// WeightedSum returns the sum over all bins of key*count.
func (h *Histogram) WeightedSum() int64 {
	var sum int64
	for _, b := range h.Bins() {
		sum += int64(b.Key) * b.Count
	}
	return sum
}

// Merge adds the counts of other to h.
func (h *Histogram) Merge(other *Histogram) {
	for _, b := range other.Bins() {
		h.add(b.Key, b.Count)
	}
}

// DuplicateSetMetrics accumulates statistics over the duplicate sets
// produced by a DuplicateSetIterator. It is not safe for concurrent
// use; read it after the iterator is exhausted.
type DuplicateSetMetrics struct {
	// size counts duplicate sets by their number of duplicates, i.e.
	// set size minus the representative.
	size Histogram
	// nonOptical counts duplicate sets by their number of
	// non-optical duplicates. Sets without any are not counted.
	nonOptical Histogram
	// optical counts duplicate sets by their number of optical
	// duplicates. Sets without any are not counted.
	optical Histogram
	// opticalByLibrary is the total number of optical duplicates per
	// library.
	opticalByLibrary map[string]int64
}

// NewDuplicateSetMetrics returns empty metrics.
func NewDuplicateSetMetrics() *DuplicateSetMetrics {
	return &DuplicateSetMetrics{opticalByLibrary: make(map[string]int64)}
}

// SizeHistogram returns the histogram of duplicate counts (set size
// minus one) over all duplicate sets.
func (m *DuplicateSetMetrics) SizeHistogram() *Histogram { return &m.size }

// NonOpticalHistogram returns the histogram of non-optical duplicate
// counts over sets that have any.
func (m *DuplicateSetMetrics) NonOpticalHistogram() *Histogram { return &m.nonOptical }

// OpticalHistogram returns the histogram of optical duplicate counts
// over sets that have any.
func (m *DuplicateSetMetrics) OpticalHistogram() *Histogram { return &m.optical }

// OpticalDuplicatesByLibrary returns a copy of the per-library
// optical duplicate totals.
func (m *DuplicateSetMetrics) OpticalDuplicatesByLibrary() map[string]int64 {
	c := make(map[string]int64, len(m.opticalByLibrary))
	for library, n := range m.opticalByLibrary {
		c[library] = n
	}
	return c
}

// Libraries returns the libraries with optical duplicates, sorted.
func (m *DuplicateSetMetrics) Libraries() []string {
	libraries := make([]string, 0, len(m.opticalByLibrary))
	for library := range m.opticalByLibrary {
		libraries = append(libraries, library)
	}
	sort.Strings(libraries)
	return libraries
}

// AddDuplicateSet records a duplicate set of size n that contains k
// optical duplicates.
func (m *DuplicateSetMetrics) AddDuplicateSet(n, k int) {
	m.size.Increment(n - 1)
	if nonOptical := n - 1 - k; nonOptical > 0 {
		m.nonOptical.Increment(nonOptical)
	}
	if k > 0 {
		m.optical.Increment(k)
	}
}

// AddLibraryOptical adds n optical duplicates to library's total.
func (m *DuplicateSetMetrics) AddLibraryOptical(library string, n int) {
	if m.opticalByLibrary == nil {
		m.opticalByLibrary = make(map[string]int64)
	}
	m.opticalByLibrary[library] += int64(n)
}

// Merge adds the contents of other to m.
func (m *DuplicateSetMetrics) Merge(other *DuplicateSetMetrics) {
	m.size.Merge(&other.size)
	m.nonOptical.Merge(&other.nonOptical)
	m.optical.Merge(&other.optical)
	for library, n := range other.opticalByLibrary {
		m.AddLibraryOptical(library, int(n))
	}
}

// EstimatedLibrarySize estimates the number of distinct molecules in
// the library from the read ends seen, less optical duplicates, and
// the number of duplicate sets.
func (m *DuplicateSetMetrics) EstimatedLibrarySize() (uint64, error) {
	sets := m.size.Sum()
	readEnds := m.size.WeightedSum() + sets
	return estimateLibrarySize(uint64(readEnds-m.optical.WeightedSum()), uint64(sets))
}

// metricsBatch holds the metric updates for one upstream group until
// every sub-group of it has been classified.
type metricsBatch struct {
	sets    [][2]int
	optical []libraryOptical
}

type libraryOptical struct {
	library string
	n       int
}

func (b *metricsBatch) addDuplicateSet(n, k int) {
	b.sets = append(b.sets, [2]int{n, k})
}

func (b *metricsBatch) addLibraryOptical(library string, n int) {
	b.optical = append(b.optical, libraryOptical{library, n})
}

func (b *metricsBatch) commit(m *DuplicateSetMetrics) {
	for _, s := range b.sets {
		m.AddDuplicateSet(s[0], s[1])
	}
	for _, o := range b.optical {
		m.AddLibraryOptical(o.library, o.n)
	}
	b.reset()
}

func (b *metricsBatch) reset() {
	b.sets = b.sets[:0]
	b.optical = b.optical[:0]
}
