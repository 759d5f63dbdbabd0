package groupio

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/umidup/markduplicates"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// OutputFile is a file created by Create. Data written to it is gzip
// compressed when the path ends in ".gz".
type OutputFile struct {
	ctx  context.Context
	path string
	f    file.File
	gz   *gzip.Writer
}

// Create creates the file at path.
func Create(ctx context.Context, path string) (*OutputFile, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	out := &OutputFile{ctx: ctx, path: path, f: f}
	if strings.HasSuffix(path, ".gz") {
		out.gz = gzip.NewWriter(f.Writer(ctx))
	}
	return out, nil
}

// Writer returns the writer for the file's content.
func (o *OutputFile) Writer() io.Writer {
	if o.gz != nil {
		return o.gz
	}
	return o.f.Writer(o.ctx)
}

// Close flushes and closes the file.
func (o *OutputFile) Close() error {
	var err error
	if o.gz != nil {
		err = o.gz.Close()
	}
	if e := o.f.Close(o.ctx); e != nil && err == nil {
		err = e
	}
	return errors.Wrapf(err, "close %s", o.path)
}

// AssignmentWriter writes, for every read end of every duplicate set,
// the read name, the 0-based index of its set, and whether it is an
// optical duplicate.
type AssignmentWriter struct {
	w       *tsv.Writer
	nextSet int
}

// NewAssignmentWriter writes the header row to w and returns the
// writer.
func NewAssignmentWriter(w io.Writer) (*AssignmentWriter, error) {
	t := tsv.NewWriter(w)
	t.WriteString("NAME\tSET\tOPTICAL")
	if err := t.EndLine(); err != nil {
		return nil, err
	}
	return &AssignmentWriter{w: t}, nil
}

// Write writes the rows of the next duplicate set.
func (a *AssignmentWriter) Write(set markduplicates.DuplicateGroup, optical []bool) error {
	if len(optical) != len(set) {
		return errors.Errorf("set %d has %d read ends but %d optical flags", a.nextSet, len(set), len(optical))
	}
	id := strconv.Itoa(a.nextSet)
	for i, e := range set {
		a.w.WriteString(e.Name)
		a.w.WriteString(id)
		a.w.WriteString(strconv.FormatBool(optical[i]))
		if err := a.w.EndLine(); err != nil {
			return err
		}
	}
	a.nextSet++
	return nil
}

// Flush flushes buffered rows.
func (a *AssignmentWriter) Flush() error {
	return a.w.Flush()
}

// WriteMetrics writes the duplicate set histograms, one row per key
// that occurs in any of them, followed by the per-library optical
// duplicate totals and the estimated library size.
func WriteMetrics(w io.Writer, m *markduplicates.DuplicateSetMetrics) error {
	t := tsv.NewWriter(w)
	t.WriteString("## HISTOGRAM")
	if err := t.EndLine(); err != nil {
		return err
	}
	t.WriteString("DUPLICATES\tSETS\tNON_OPTICAL_SETS\tOPTICAL_SETS")
	if err := t.EndLine(); err != nil {
		return err
	}
	seen := map[int]bool{}
	var keys []int
	for _, h := range []*markduplicates.Histogram{m.SizeHistogram(), m.NonOpticalHistogram(), m.OpticalHistogram()} {
		for _, b := range h.Bins() {
			if !seen[b.Key] {
				seen[b.Key] = true
				keys = append(keys, b.Key)
			}
		}
	}
	sort.Ints(keys)
	for _, key := range keys {
		t.WriteString(strconv.Itoa(key))
		t.WriteString(strconv.FormatInt(m.SizeHistogram().Get(key), 10))
		t.WriteString(strconv.FormatInt(m.NonOpticalHistogram().Get(key), 10))
		t.WriteString(strconv.FormatInt(m.OpticalHistogram().Get(key), 10))
		if err := t.EndLine(); err != nil {
			return err
		}
	}

	t.WriteString("## LIBRARY")
	if err := t.EndLine(); err != nil {
		return err
	}
	t.WriteString("LIBRARY\tOPTICAL_DUPLICATES")
	if err := t.EndLine(); err != nil {
		return err
	}
	byLibrary := m.OpticalDuplicatesByLibrary()
	for _, library := range m.Libraries() {
		t.WriteString(library)
		t.WriteString(strconv.FormatInt(byLibrary[library], 10))
		if err := t.EndLine(); err != nil {
			return err
		}
	}

	size := "NA"
	if n, err := m.EstimatedLibrarySize(); err == nil {
		size = strconv.FormatUint(n, 10)
	}
	t.WriteString("ESTIMATED_LIBRARY_SIZE")
	t.WriteString(size)
	if err := t.EndLine(); err != nil {
		return err
	}
	return t.Flush()
}
