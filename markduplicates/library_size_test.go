package markduplicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateLibrarySize(t *testing.T) {
	tests := []struct {
		observed uint64
		unique   uint64
		expected uint64
	}{
		{1000000, 800000, 2154184},
		{171512300, 171512299, 14708234445116054},
	}

	for _, test := range tests {
		v, err := estimateLibrarySize(test.observed, test.unique)
		assert.NoError(t, err)
		assert.InEpsilon(t, test.expected, v, 0.0000000001)
	}
}

func TestEstimateLibrarySizeNoDuplicates(t *testing.T) {
	for _, test := range []struct{ observed, unique uint64 }{
		{0, 0},
		{10, 10},
		{10, 12},
	} {
		_, err := estimateLibrarySize(test.observed, test.unique)
		assert.Error(t, err, "%+v", test)
	}
}
