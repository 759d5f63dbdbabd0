package markduplicates

import "fmt"

// Orientation describes the strands of a fragment or a read pair.
// For pairs, the first letter is the strand of the first-sequenced
// mate (R1) and the second letter is the strand of its mate.
type Orientation uint8

const (
	F  Orientation = iota // Forward (single fragment)
	R                     // Reverse (single fragment)
	FF                    // Forward, Forward
	FR                    // Forward, Reverse
	RF                    // Reverse, Forward
	RR                    // Reverse, Reverse
)

var orientationNames = []string{"F", "R", "FF", "FR", "RF", "RR"}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return fmt.Sprintf("Orientation(%d)", uint8(o))
}

// ParseOrientation returns the Orientation named by s, one of F, R,
// FF, FR, RF or RR.
func ParseOrientation(s string) (Orientation, error) {
	for i, name := range orientationNames {
		if name == s {
			return Orientation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

func orientationBytePair(r1Reversed, r2Reversed bool) Orientation {
	if r1Reversed {
		if r2Reversed {
			return RR
		}
		return RF
	}
	if r2Reversed {
		return FR
	}
	return FF
}

// ReadEnd is the unit that is clustered by molecular tag and
// classified as an optical duplicate. All ReadEnds of one
// DuplicateGroup share RefID and Pos.
type ReadEnd struct {
	// Name is the read name. It is used only for logging and output.
	Name        string
	Library     string
	RefID       int
	Pos         int
	Orientation Orientation
	Location    PhysicalLocation
	// Umi is the molecular tag. Empty means the read carries no tag.
	Umi string
}

func (e *ReadEnd) String() string {
	return fmt.Sprintf("%s(%s,%d,%d,%v,%d:%d:%d,%s)", e.Name, e.Library, e.RefID, e.Pos,
		e.Orientation, e.Location.TileName, e.Location.X, e.Location.Y, e.Umi)
}

// DuplicateGroup is an ordered, non-empty list of ReadEnds that are
// believed to come from the same locus.
type DuplicateGroup []*ReadEnd

// library returns the library of the group's first member.
func (g DuplicateGroup) library() string {
	if len(g) == 0 {
		return ""
	}
	return g[0].Library
}

// locations returns the physical locations of the members, in order.
func (g DuplicateGroup) locations() []PhysicalLocation {
	locations := make([]PhysicalLocation, len(g))
	for i, e := range g {
		locations[i] = e.Location
	}
	return locations
}
