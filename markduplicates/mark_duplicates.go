package markduplicates

// GroupIterator yields duplicate groups one at a time.
type GroupIterator interface {
	// Scan advances to the next group and returns true, or returns
	// false when there are no more groups or an error occurred.
	//
	// REQUIRES: Close has not been called.
	Scan() bool

	// Group returns the current group. It must be called only after a
	// call to Scan returned true.
	Group() DuplicateGroup

	// Err returns the error encountered during iteration, if any.
	Err() error

	// Close must be called exactly once. It releases the iterator's
	// resources and returns the value of Err, or the error from
	// releasing them.
	Close() error
}

// Opts for duplicate set refinement.
type Opts struct {
	// UseUmis enables splitting of duplicate groups by molecular tag.
	UseUmis bool
	// OpticalDistance is the pixel distance used by the default
	// TileOpticalFinder. A negative value disables optical duplicate
	// classification unless OpticalFinder is set.
	OpticalDistance int
	// UmiFile is the path of the known UMI list. Callers load its
	// content into KnownUmis.
	UmiFile string

	// Data and operators derived from the options above.

	// KnownUmis is a '\n' separated list of known molecular tags. When
	// set, tags are snap corrected to a known tag before clustering.
	KnownUmis []byte
	// OpticalFinder overrides the default TileOpticalFinder.
	OpticalFinder OpticalFinder
}

// DefaultOpts are the options used by the command line tool.
var DefaultOpts = Opts{
	UseUmis:         true,
	OpticalDistance: 100,
}

func (o *Opts) opticalFinder() OpticalFinder {
	if o.OpticalFinder != nil {
		return o.OpticalFinder
	}
	if o.OpticalDistance >= 0 {
		return &TileOpticalFinder{OpticalDistance: o.OpticalDistance}
	}
	return nil
}

type sliceGroupIterator struct {
	groups []DuplicateGroup
	cur    DuplicateGroup
}

// NewSliceGroupIterator returns a GroupIterator that yields groups in
// order.
func NewSliceGroupIterator(groups []DuplicateGroup) GroupIterator {
	return &sliceGroupIterator{groups: groups}
}

func (s *sliceGroupIterator) Scan() bool {
	if len(s.groups) == 0 {
		s.cur = nil
		return false
	}
	s.cur, s.groups = s.groups[0], s.groups[1:]
	return true
}

func (s *sliceGroupIterator) Group() DuplicateGroup { return s.cur }
func (s *sliceGroupIterator) Err() error            { return nil }
func (s *sliceGroupIterator) Close() error          { return nil }
