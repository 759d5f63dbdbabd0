package markduplicates

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/umidup/umi"
)

// DuplicateSetIterator refines the duplicate groups of an upstream
// GroupIterator. Each upstream group is split by molecular tag, each
// resulting set is classified for optical duplicates, and the sets
// are yielded one at a time while their statistics are added to a
// DuplicateSetMetrics.
//
// All work for an upstream group happens inside the Scan call that
// pulls it. If that work fails, no set of the group is yielded and
// the metrics are left untouched. A DuplicateSetIterator is not safe
// for concurrent use.
type DuplicateSetIterator struct {
	src        GroupIterator
	opts       Opts
	corrector  *umi.SnapCorrector
	classifier opticalClassifier
	metrics    *DuplicateSetMetrics
	batch      metricsBatch

	// pending holds the sets of the last upstream group that have not
	// been yielded yet, with their optical flags.
	pending      []DuplicateGroup
	pendingFlags [][]bool

	set   DuplicateGroup
	flags []bool
	err   error
}

// NewDuplicateSetIterator returns an iterator over the refined
// duplicate sets of src. Statistics are added to metrics, which must
// not be used by anything else until the iterator is exhausted; when
// metrics is nil, the iterator allocates its own. The iterator takes
// ownership of the read ends that src yields.
func NewDuplicateSetIterator(src GroupIterator, opts *Opts, metrics *DuplicateSetMetrics) (*DuplicateSetIterator, error) {
	if err := validate(opts); err != nil {
		return nil, errors.E(errors.Invalid, err)
	}
	if metrics == nil {
		metrics = NewDuplicateSetMetrics()
	}
	it := &DuplicateSetIterator{
		src:        src,
		opts:       *opts,
		classifier: opticalClassifier{finder: opts.opticalFinder()},
		metrics:    metrics,
	}
	if len(opts.KnownUmis) > 0 {
		corrector, err := umi.NewSnapCorrector(opts.KnownUmis)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, "could not load known umis")
		}
		it.corrector = corrector
	}
	return it, nil
}

// Scan advances to the next duplicate set. It pulls a group from the
// upstream iterator only when all sets of the previous group were
// yielded. Scan returns false when the upstream iterator is exhausted
// or an error occurred; see Err.
func (it *DuplicateSetIterator) Scan() bool {
	if it.err != nil {
		return false
	}
	if len(it.pending) == 0 {
		if !it.src.Scan() {
			it.err = it.src.Err()
			it.set, it.flags = nil, nil
			return false
		}
		if err := it.process(it.src.Group()); err != nil {
			it.err = err
			it.set, it.flags = nil, nil
			return false
		}
	}
	it.set, it.flags = it.pending[0], it.pendingFlags[0]
	it.pending[0], it.pendingFlags[0] = nil, nil
	it.pending, it.pendingFlags = it.pending[1:], it.pendingFlags[1:]
	return true
}

// Group returns the current duplicate set.
//
// REQUIRES: the last call to Scan returned true.
func (it *DuplicateSetIterator) Group() DuplicateGroup { return it.set }

// OpticalFlags returns the optical duplicate flags of the current
// duplicate set, one per member in Group order.
//
// REQUIRES: the last call to Scan returned true.
func (it *DuplicateSetIterator) OpticalFlags() []bool { return it.flags }

// Metrics returns the metrics the iterator adds to.
func (it *DuplicateSetIterator) Metrics() *DuplicateSetMetrics { return it.metrics }

// Err returns the first error encountered, or nil.
func (it *DuplicateSetIterator) Err() error { return it.err }

// Close closes the upstream iterator. It returns the iteration error
// if there was one, else the upstream Close error.
func (it *DuplicateSetIterator) Close() error {
	err := it.src.Close()
	it.pending, it.pendingFlags = nil, nil
	if it.err != nil {
		return it.err
	}
	return err
}

func (it *DuplicateSetIterator) process(group DuplicateGroup) error {
	if len(group) == 0 {
		return errors.E(errors.Invalid, "upstream yielded an empty duplicate group")
	}
	if it.corrector != nil {
		it.correctUmis(group)
	}
	sets := []DuplicateGroup{group}
	if it.opts.UseUmis {
		var err error
		if sets, err = splitByUmi(group); err != nil {
			return err
		}
	}

	flags := make([][]bool, len(sets))
	for i, set := range sets {
		var (
			k   int
			err error
		)
		flags[i], k, err = it.classifier.classify(set, &it.batch)
		if err != nil {
			it.batch.reset()
			return err
		}
		it.batch.addDuplicateSet(len(set), k)
	}
	it.batch.commit(it.metrics)
	it.pending, it.pendingFlags = sets, flags
	return nil
}

// correctUmis snaps the tags of group's members to known tags.
func (it *DuplicateSetIterator) correctUmis(group DuplicateGroup) {
	for _, e := range group {
		if e.Umi == "" {
			continue
		}
		corrected, edits, ok := it.corrector.CorrectUMI(e.Umi)
		if ok {
			log.Debug.Printf("snap correcting %s umi %s to %s with %d edits", e.Name, e.Umi, corrected, edits)
			e.Umi = corrected
		}
	}
}
