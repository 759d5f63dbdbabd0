package markduplicates

import (
	"fmt"
	"os"
	"testing"

	"github.com/grailbio/base/grail"
)

func TestMain(m *testing.M) {
	shutdown := grail.Init()
	defer shutdown()
	os.Exit(m.Run())
}

// newEnd returns a read end at chr0:100 on tile 1101 of lane 1. Read
// ends built with different x values are never optical duplicates of
// each other unless a test places them within the optical distance.
func newEnd(name, umi string, o Orientation, x, y int) *ReadEnd {
	return &ReadEnd{
		Name:        name,
		Library:     "lib1",
		RefID:       0,
		Pos:         100,
		Orientation: o,
		Location:    PhysicalLocation{Lane: 1, TileName: 1101, Surface: 1, Swath: 1, TileNumber: 1, X: x, Y: y},
		Umi:         umi,
	}
}

// umiGroup returns a group with one FR read end per tag, spaced far
// apart on the tile.
func umiGroup(umis ...string) DuplicateGroup {
	g := make(DuplicateGroup, len(umis))
	for i, u := range umis {
		g[i] = newEnd(fmt.Sprintf("r%d", i), u, FR, 10000*(i+1), 10000*(i+1))
	}
	return g
}

func names(g DuplicateGroup) []string {
	n := make([]string, len(g))
	for i, e := range g {
		n[i] = e.Name
	}
	return n
}

// recordingFinder flags a fixed set of read positions within each call
// and records the locations it was called with.
type recordingFinder struct {
	calls [][]PhysicalLocation
	// flag returns whether the i'th location of a call is optical.
	flag func(call, i int, l PhysicalLocation) bool
	err  error
}

func (f *recordingFinder) FindOpticalDuplicates(library string, locations []PhysicalLocation) ([]bool, error) {
	call := len(f.calls)
	f.calls = append(f.calls, append([]PhysicalLocation(nil), locations...))
	if f.err != nil {
		return nil, f.err
	}
	flags := make([]bool, len(locations))
	for i, l := range locations {
		if f.flag != nil {
			flags[i] = f.flag(call, i, l)
		}
	}
	return flags, nil
}
