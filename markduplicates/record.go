package markduplicates

import (
	"fmt"

	"github.com/grailbio/hts/sam"
)

var (
	rgTag = sam.Tag{'R', 'G'}
	rxTag = sam.Tag{'R', 'X'}
)

const unknownLibrary = "Unknown Library"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func getStringAux(r *sam.Record, tag sam.Tag) (string, bool) {
	aux := r.AuxFields.Get(tag)
	if aux == nil {
		return "", false
	}
	s, ok := aux.Value().(string)
	return s, ok
}

// GetLibrary returns the library for the given record's read group.
// If the library is not defined in readGroupLibrary, returns "Unknown
// Library".
func GetLibrary(readGroupLibrary map[string]string, record *sam.Record) string {
	readGroup, found := getStringAux(record, rgTag)
	if !found {
		return unknownLibrary
	}
	library := readGroupLibrary[readGroup]
	if library == "" {
		return unknownLibrary
	}
	return library
}

// ReadGroupLibraries maps each read group in header to its library.
func ReadGroupLibraries(header *sam.Header) map[string]string {
	m := make(map[string]string)
	for _, rg := range header.RGs() {
		m[rg.Name()] = rg.Library()
	}
	return m
}

// GetR1R2Orientation returns the orientation of the pair that r
// belongs to, relative to the first-sequenced mate. Reads without a
// mapped mate get a single fragment orientation.
func GetR1R2Orientation(r *sam.Record) (Orientation, error) {
	reversed := r.Flags&sam.Reverse != 0
	if r.Flags&sam.Paired == 0 || r.Flags&sam.MateUnmapped != 0 {
		if reversed {
			return R, nil
		}
		return F, nil
	}
	mateReversed := r.Flags&sam.MateReverse != 0
	read1 := r.Flags&sam.Read1 != 0
	if read1 == (r.Flags&sam.Read2 != 0) {
		return 0, fmt.Errorf("read %s is not exactly one of first or second in pair: flags %d", r.Name, r.Flags)
	}
	if read1 {
		return orientationBytePair(reversed, mateReversed), nil
	}
	return orientationBytePair(mateReversed, reversed), nil
}

// NewReadEndFromRecord builds a ReadEnd from a SAM record. The library
// comes from the record's read group, the molecular tag from the RX
// aux field, and the physical location from the Illumina read name.
func NewReadEndFromRecord(readGroupLibrary map[string]string, r *sam.Record) (*ReadEnd, error) {
	location, err := ParseLocation(r.Name)
	if err != nil {
		return nil, err
	}
	orientation, err := GetR1R2Orientation(r)
	if err != nil {
		return nil, err
	}
	umi, _ := getStringAux(r, rxTag)
	return &ReadEnd{
		Name:        r.Name,
		Library:     GetLibrary(readGroupLibrary, r),
		RefID:       r.Ref.ID(),
		Pos:         r.Pos,
		Orientation: orientation,
		Location:    location,
		Umi:         umi,
	}, nil
}
