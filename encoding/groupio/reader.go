package groupio

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/umidup/markduplicates"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// row is one line of a duplicate group TSV.
type row struct {
	Group       string `tsv:"GROUP"`
	Name        string `tsv:"NAME"`
	Library     string `tsv:"LIBRARY"`
	Ref         int64  `tsv:"REF"`
	Pos         int64  `tsv:"POS"`
	Orientation string `tsv:"ORIENTATION"`
	Umi         string `tsv:"UMI"`
}

// Reader yields the duplicate groups of a TSV stream. It implements
// markduplicates.GroupIterator.
type Reader struct {
	name string
	tsv  *tsv.Reader

	next    *row
	groupID string
	group   markduplicates.DuplicateGroup
	done    bool
	err     error

	closers []func() error
}

// NewReader returns a Reader over uncompressed TSV data from r. name
// is used in error messages.
func NewReader(r io.Reader, name string) *Reader {
	t := tsv.NewReader(r)
	t.HasHeaderRow = true
	t.UseHeaderNames = true
	t.Comment = '#'
	return &Reader{name: name, tsv: t}
}

// Open opens the TSV file at path, which may be local or any path
// supported by grailbio/base/file.
func Open(ctx context.Context, path string) (*Reader, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	var (
		in      io.Reader = f.Reader(ctx)
		closers []func() error
	)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			_ = f.Close(ctx)
			return nil, errors.Wrapf(err, "open %s", path)
		}
		in = gz
		closers = append(closers, gz.Close)
	}
	closers = append(closers, func() error { return f.Close(ctx) })
	r := NewReader(in, path)
	r.closers = closers
	return r, nil
}

// Scan reads the next duplicate group.
func (r *Reader) Scan() bool {
	if r.err != nil || r.done {
		r.group = nil
		return false
	}
	var group markduplicates.DuplicateGroup
	for {
		if r.next == nil {
			var next row
			if err := r.tsv.Read(&next); err != nil {
				if err == io.EOF {
					r.done = true
					break
				}
				r.err = errors.Wrapf(err, "%s: read", r.name)
				r.group = nil
				return false
			}
			r.next = &next
		}
		if len(group) > 0 && r.next.Group != r.groupID {
			break
		}
		e, err := newReadEnd(r.next)
		if err != nil {
			r.err = errors.Wrapf(err, "%s: group %s", r.name, r.next.Group)
			r.group = nil
			return false
		}
		r.groupID = r.next.Group
		group = append(group, e)
		r.next = nil
	}
	r.group = group
	return len(group) > 0
}

// Group returns the current group.
func (r *Reader) Group() markduplicates.DuplicateGroup { return r.group }

// Err returns the first read or parse error.
func (r *Reader) Err() error { return r.err }

// Close closes the underlying file, if the Reader was created by Open.
func (r *Reader) Close() error {
	err := r.err
	for _, c := range r.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	r.closers = nil
	return err
}

func newReadEnd(r *row) (*markduplicates.ReadEnd, error) {
	location, err := markduplicates.ParseLocation(r.Name)
	if err != nil {
		return nil, err
	}
	orientation, err := markduplicates.ParseOrientation(r.Orientation)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.Name)
	}
	return &markduplicates.ReadEnd{
		Name:        r.Name,
		Library:     r.Library,
		RefID:       int(r.Ref),
		Pos:         int(r.Pos),
		Orientation: orientation,
		Location:    location,
		Umi:         strings.ToUpper(r.Umi),
	}, nil
}
