package main

/*
  umi-dupsets splits position based duplicate groups by molecular tag
  and counts optical duplicates. For more information, see
  github.com/grailbio/umidup/markduplicates/doc.go
*/

import (
	"context"
	"flag"
	"io/ioutil"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/umidup/encoding/groupio"
	md "github.com/grailbio/umidup/markduplicates"
)

var (
	groupsFile      = flag.String("groups", "", "Input duplicate group TSV, optionally gzipped")
	outputPath      = flag.String("output", "", "Output duplicate set assignment TSV")
	metricsFile     = flag.String("metrics", "", "Output metrics file")
	useUmis         = flag.Bool("use-umis", md.DefaultOpts.UseUmis, "split duplicate groups by the UMI column")
	umiFile         = flag.String("umi-file", "", "snap correct UMIs to the known UMIs in this file before splitting")
	opticalDistance = flag.Int("optical-distance", md.DefaultOpts.OpticalDistance, "pixel distance threshold for optical duplicates, use -1 to disable")
)

func run(ctx context.Context, opts *md.Opts) (err error) {
	if len(opts.UmiFile) > 0 {
		umiReader, err := file.Open(ctx, opts.UmiFile)
		if err != nil {
			return errors.E(err, "could not open umi file", opts.UmiFile)
		}
		defer umiReader.Close(ctx) // nolint: errcheck
		if opts.KnownUmis, err = ioutil.ReadAll(umiReader.Reader(ctx)); err != nil {
			return errors.E(err, "could not read umi file", opts.UmiFile)
		}
	}

	groups, err := groupio.Open(ctx, *groupsFile)
	if err != nil {
		return err
	}
	metrics := md.NewDuplicateSetMetrics()
	it, err := md.NewDuplicateSetIterator(groups, opts, metrics)
	if err != nil {
		_ = groups.Close()
		return err
	}

	var (
		out         *groupio.OutputFile
		assignments *groupio.AssignmentWriter
	)
	if *outputPath != "" {
		if out, err = groupio.Create(ctx, *outputPath); err != nil {
			_ = it.Close()
			return err
		}
		defer func() {
			if e := out.Close(); e != nil && err == nil {
				err = e
			}
		}()
		if assignments, err = groupio.NewAssignmentWriter(out.Writer()); err != nil {
			_ = it.Close()
			return err
		}
	}

	nSets := 0
	for it.Scan() {
		nSets++
		if assignments != nil {
			if err = assignments.Write(it.Group(), it.OpticalFlags()); err != nil {
				_ = it.Close()
				return err
			}
		}
	}
	if err = it.Close(); err != nil {
		return err
	}
	if assignments != nil {
		if err = assignments.Flush(); err != nil {
			return err
		}
	}
	log.Printf("wrote %d duplicate sets, %d with optical duplicates", nSets, metrics.OpticalHistogram().Sum())

	if *metricsFile != "" {
		m, err := groupio.Create(ctx, *metricsFile)
		if err != nil {
			return err
		}
		if err = groupio.WriteMetrics(m.Writer(), metrics); err != nil {
			_ = m.Close()
			return errors.E(err, "error writing to metrics file:", *metricsFile)
		}
		return m.Close()
	}
	return nil
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() > 0 {
		a := flag.Args()
		log.Fatalf("unparsed flags, please check flag syntax: '%s'", strings.Join(a[len(a)-flag.NArg():], " "))
	}
	if *groupsFile == "" {
		log.Fatalf("you must specify an input file with --groups")
	}

	opts := md.Opts{
		UseUmis:         *useUmis,
		UmiFile:         *umiFile,
		OpticalDistance: *opticalDistance,
	}
	if err := run(vcontext.Background(), &opts); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
