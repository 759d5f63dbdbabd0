package markduplicates

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// OpticalFinder decides which of a list of physical locations are
// optical duplicates.
type OpticalFinder interface {
	// FindOpticalDuplicates returns one flag per location, in the same
	// order, set for every location that is an optical duplicate of
	// another location in the list. locations is non-empty, belongs to
	// one library and holds read ends of one orientation.
	FindOpticalDuplicates(library string, locations []PhysicalLocation) ([]bool, error)
}

// TileOpticalFinder flags optical duplicates within a tile. Two
// locations are optical duplicates when their lane and tile are
// identical and both their X and Y coordinates differ by at most
// OpticalDistance. The later of the two locations in list order is
// flagged.
type TileOpticalFinder struct {
	OpticalDistance int
}

// FindOpticalDuplicates implements OpticalFinder.
func (t *TileOpticalFinder) FindOpticalDuplicates(library string, locations []PhysicalLocation) ([]bool, error) {
	if len(locations) == 0 {
		return nil, errors.E(errors.Invalid, "no locations for library", library)
	}
	flags := make([]bool, len(locations))
	for i := range locations {
		for j := i + 1; j < len(locations); j++ {
			if flags[j] {
				continue
			}
			if isOpticalDup(t.OpticalDistance, &locations[i], &locations[j]) {
				flags[j] = true
			}
		}
	}
	return flags, nil
}

func isOpticalDup(opticalDistance int, a, b *PhysicalLocation) bool {
	return a.Lane == b.Lane && a.TileName == b.TileName &&
		abs(a.X-b.X) <= opticalDistance && abs(a.Y-b.Y) <= opticalDistance
}

// opticalClassifier is the only caller of the OpticalFinder. Each
// orientation partition of a group is passed to the finder exactly
// once.
type opticalClassifier struct {
	finder OpticalFinder
}

// classify returns the optical flags of group's members in group
// order, and their count. Per-library optical counts are recorded in
// batch, once per orientation partition that has optical duplicates.
func (c *opticalClassifier) classify(group DuplicateGroup, batch *metricsBatch) ([]bool, int, error) {
	partitions, err := partitionByOrientation(group)
	if err != nil {
		return nil, 0, err
	}
	if c.finder == nil || len(group) < 2 {
		return make([]bool, len(group)), 0, nil
	}

	flags := make([][]bool, len(partitions))
	total := 0
	for i, p := range partitions {
		library := p.ends.library()
		flags[i], err = c.finder.FindOpticalDuplicates(library, p.ends.locations())
		if err != nil {
			return nil, 0, errors.E(err, "optical duplicate detection failed for library", library)
		}
		if len(flags[i]) != len(p.ends) {
			return nil, 0, errors.E(errors.Invalid,
				fmt.Sprintf("optical duplicate finder returned %d flags for %d locations", len(flags[i]), len(p.ends)))
		}
		n := countTrue(flags[i])
		if n > 0 {
			batch.addLibraryOptical(library, n)
			if log.At(log.Debug) {
				log.Debug.Printf("%d optical duplicates among %d %v read ends of library %s at %d:%d",
					n, len(p.ends), p.orientation, library, p.ends[0].RefID, p.ends[0].Pos)
			}
		}
		total += n
	}
	if len(partitions) == 1 {
		return flags[0], total, nil
	}
	return mergePartitionFlags(len(group), partitions, flags), total, nil
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
