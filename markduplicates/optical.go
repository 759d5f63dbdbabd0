package markduplicates

import (
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// PhysicalLocation describes a read's physical location on the flow
// cell. Lane, Surface, Swath, Section, and TileNumber together
// specify which flowcell tile the read was found in. TileName is the
// 4 or 5 digit representation of the tile, e.g. 1203 means surface 1,
// swath 2 and tile 3. 12304 means surface 1, swath 2, section 3, and
// tile 4. X and Y describe the X and Y coordinates of the well within
// the tile.
type PhysicalLocation struct {
	Lane       int
	Surface    int
	Swath      int
	Section    int
	TileNumber int
	TileName   int
	X          int
	Y          int
}

const (
	// Illumina read names come in 3 varieties: 5, 7, and 8 columns.
	// For 5 and 7 field read names, the last three fields are:
	// tileName, X and Y. For 8 field read names, the last four fields
	// are tileName, X, Y, and UMI. These constants help keep track of
	// which fields are what.

	// IlluminaReadName5Fields is the number of columns in a 5 field read name.
	IlluminaReadName5Fields = 5
	// IlluminaReadName5FieldsTileField is 0-based field number that
	// contains the tileName for 5 field read names.
	IlluminaReadName5FieldsTileField = 2

	// IlluminaReadName7Fields is the number of columns in a 7 field read name.
	IlluminaReadName7Fields = 7
	// IlluminaReadName7FieldsTileField is 0-based field number that
	// contains the tileName for 7 field read names.
	IlluminaReadName7FieldsTileField = 4

	// IlluminaReadName8Fields is the number of columns in an 8 field read name.
	IlluminaReadName8Fields = 8
	// IlluminaReadName8FieldsTileField is 0-based field number that
	// contains the tileName for 8 field read names.
	IlluminaReadName8FieldsTileField = 4
)

// ParseLocation returns a physical location given an Illumina style
// read name. The read name must have 5, 7, or 8 fields separated by
// ':'. The field before the tile is the lane; the tile is followed by
// X and Y.
//
// The tileName must be formatted as a 4 or 5 digit Illumina tileName.
func ParseLocation(qname string) (PhysicalLocation, error) {
	var location PhysicalLocation
	fields := strings.Split(qname, ":")
	var tileIdx int
	switch len(fields) {
	case IlluminaReadName5Fields:
		tileIdx = IlluminaReadName5FieldsTileField
	case IlluminaReadName7Fields:
		tileIdx = IlluminaReadName7FieldsTileField
	case IlluminaReadName8Fields:
		tileIdx = IlluminaReadName8FieldsTileField
	default:
		return location, errors.E(errors.Invalid,
			"could not parse name:", qname, "expected 5, 7, or 8 fields separated by ':'")
	}

	parse := func(field, what string) (int, error) {
		v, err := strconv.Atoi(field)
		if err != nil {
			return 0, errors.E(errors.Invalid, err, "could not parse name:", qname, "bad", what)
		}
		return v, nil
	}
	var err error
	if location.Lane, err = parse(fields[tileIdx-1], "lane"); err != nil {
		return location, err
	}
	if location.TileName, err = parse(fields[tileIdx], "tile"); err != nil {
		return location, err
	}
	if location.X, err = parse(fields[tileIdx+1], "x"); err != nil {
		return location, err
	}
	if location.Y, err = parse(fields[tileIdx+2], "y"); err != nil {
		return location, err
	}

	switch {
	case location.TileName > 99999 || location.TileName < 0:
		return location, errors.E(errors.Invalid, "could not parse name:", qname,
			"unexpected tile name", strconv.Itoa(location.TileName), "expected 4 or 5 digits")
	case location.TileName > 9999:
		location.Surface = location.TileName / 10000
		location.Swath = (location.TileName % 10000) / 1000
		location.Section = (location.TileName % 1000) / 100
		location.TileNumber = location.TileName % 100
	default:
		location.Surface = location.TileName / 1000
		location.Swath = (location.TileName % 1000) / 100
		location.TileNumber = location.TileName % 100
	}
	return location, nil
}
