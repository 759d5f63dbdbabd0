package markduplicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	var h Histogram
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Bins())
	for _, k := range []int{5, 1, 3, 1, 5, 5} {
		h.Increment(k)
	}
	assert.Equal(t, []Bin{{1, 2}, {3, 1}, {5, 3}}, h.Bins())
	assert.Equal(t, int64(3), h.Get(5))
	assert.Equal(t, int64(0), h.Get(4))
	assert.Equal(t, int64(6), h.Sum())
	assert.Equal(t, int64(2+3+15), h.WeightedSum())

	var other Histogram
	other.Increment(4)
	other.Increment(5)
	h.Merge(&other)
	assert.Equal(t, []Bin{{1, 2}, {3, 1}, {4, 1}, {5, 4}}, h.Bins())
}

func TestAddDuplicateSet(t *testing.T) {
	m := NewDuplicateSetMetrics()
	m.AddDuplicateSet(7, 2)
	assert.Equal(t, []Bin{{6, 1}}, m.SizeHistogram().Bins())
	assert.Equal(t, []Bin{{4, 1}}, m.NonOpticalHistogram().Bins())
	assert.Equal(t, []Bin{{2, 1}}, m.OpticalHistogram().Bins())

	// Singletons only count in the size histogram.
	m = NewDuplicateSetMetrics()
	m.AddDuplicateSet(1, 0)
	assert.Equal(t, []Bin{{0, 1}}, m.SizeHistogram().Bins())
	assert.Equal(t, 0, m.NonOpticalHistogram().Len())
	assert.Equal(t, 0, m.OpticalHistogram().Len())

	// All duplicates optical.
	m = NewDuplicateSetMetrics()
	m.AddDuplicateSet(3, 2)
	assert.Equal(t, []Bin{{2, 1}}, m.SizeHistogram().Bins())
	assert.Equal(t, 0, m.NonOpticalHistogram().Len())
	assert.Equal(t, []Bin{{2, 1}}, m.OpticalHistogram().Bins())
}

func TestMetricsMerge(t *testing.T) {
	a := NewDuplicateSetMetrics()
	a.AddDuplicateSet(2, 0)
	a.AddLibraryOptical("lib1", 1)
	b := &DuplicateSetMetrics{}
	b.AddDuplicateSet(2, 1)
	b.AddLibraryOptical("lib1", 2)
	b.AddLibraryOptical("lib2", 3)
	a.Merge(b)
	assert.Equal(t, []Bin{{1, 2}}, a.SizeHistogram().Bins())
	assert.Equal(t, []Bin{{1, 1}}, a.NonOpticalHistogram().Bins())
	assert.Equal(t, []Bin{{1, 1}}, a.OpticalHistogram().Bins())
	assert.Equal(t, map[string]int64{"lib1": 3, "lib2": 3}, a.OpticalDuplicatesByLibrary())
	assert.Equal(t, []string{"lib1", "lib2"}, a.Libraries())
}

func TestMetricsBatch(t *testing.T) {
	m := NewDuplicateSetMetrics()
	var b metricsBatch
	b.addDuplicateSet(4, 1)
	b.addLibraryOptical("lib1", 1)
	b.reset()
	b.commit(m)
	assert.Equal(t, 0, m.SizeHistogram().Len())
	assert.Empty(t, m.OpticalDuplicatesByLibrary())

	b.addDuplicateSet(4, 1)
	b.addLibraryOptical("lib1", 1)
	b.commit(m)
	assert.Equal(t, []Bin{{3, 1}}, m.SizeHistogram().Bins())
	assert.Equal(t, map[string]int64{"lib1": 1}, m.OpticalDuplicatesByLibrary())
	assert.Empty(t, b.sets)
}

func TestEstimatedLibrarySize(t *testing.T) {
	m := NewDuplicateSetMetrics()
	_, err := m.EstimatedLibrarySize()
	assert.Error(t, err)

	// 800000 sets seen from 1000000 read ends.
	for i := 0; i < 600000; i++ {
		m.AddDuplicateSet(1, 0)
	}
	for i := 0; i < 200000; i++ {
		m.AddDuplicateSet(2, 0)
	}
	size, err := m.EstimatedLibrarySize()
	require.NoError(t, err)
	assert.InEpsilon(t, 2154184, size, 0.0000000001)

	// Optical duplicates do not count as observed molecules.
	m = NewDuplicateSetMetrics()
	m.AddDuplicateSet(3, 2)
	_, err = m.EstimatedLibrarySize()
	assert.Error(t, err)
}
