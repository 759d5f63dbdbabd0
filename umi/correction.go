package umi

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/grailbio/base/log"
)

var (
	alphabetMap = map[byte]bool{
		'A': true,
		'C': true,
		'G': true,
		'T': true,
	}

	alphabetWithN = []byte{'A', 'C', 'G', 'T', 'N'}
)

type snapEntry struct {
	knownUMI string
	edits    int
}

// SnapCorrector implements "snap" correction of molecular tags. A tag
// U is snappable if there is exactly one known tag U1 that is closer
// to U than all other known tags, in terms of Levenshtein edit
// distance.
//
// A SnapCorrector is immutable after construction and may be shared
// between goroutines.
type SnapCorrector struct {
	known []string
	k     int

	// table maps every snappable k-mer over ACGTN to the known tag it
	// snaps to.
	table map[string]snapEntry
}

// NewSnapCorrector builds a corrector from a '\n' separated list of
// known tags, the content of a UMI file. All known tags must have the
// same length and consist of ACGT.
func NewSnapCorrector(knownUMIs []byte) (*SnapCorrector, error) {
	log.Debug.Printf("building snap correction table")
	scanner := bufio.NewScanner(bytes.NewReader(knownUMIs))
	var known []string
	k := -1
	for scanner.Scan() {
		umi := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if umi == "" {
			continue
		}
		if k < 0 {
			k = len(umi)
		}
		if len(umi) != k {
			return nil, fmt.Errorf("umi %s has length %d, other umis have length %d", umi, len(umi), k)
		}
		for i := 0; i < len(umi); i++ {
			if !alphabetMap[umi[i]] {
				return nil, fmt.Errorf("invalid base %c in known umi %s", umi[i], umi)
			}
		}
		known = append(known, umi)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("no umis in input")
	}

	table := map[string]snapEntry{}
	for _, kmer := range allKmers(k, alphabetWithN) {
		// byCost[c] lists the known tags at distance c from kmer.
		byCost := make([][]string, k+1)
		for _, knownUMI := range known {
			cost := matchr.Levenshtein(kmer, knownUMI)
			byCost[cost] = append(byCost[cost], knownUMI)
		}
		for cost, candidates := range byCost {
			if len(candidates) == 1 {
				table[kmer] = snapEntry{candidates[0], cost}
			}
			if len(candidates) > 0 {
				break
			}
		}
	}
	log.Debug.Printf("snap correction table has %d entries for %d known umis", len(table), len(known))

	return &SnapCorrector{
		known: known,
		k:     k,
		table: table,
	}, nil
}

// Len returns the tag length of the known tags.
func (c *SnapCorrector) Len() int { return c.k }

// CorrectUMI returns the corrected tag, the number of edits to reach
// it, and true when there is exactly one closest known tag different
// from umi. A known tag is returned unchanged with 0 edits and false.
// Tags that cannot be snapped, including tags of the wrong length or
// containing bases outside ACGTN, are returned unchanged with -1 edits.
func (c *SnapCorrector) CorrectUMI(umi string) (correctedUMI string, edits int, corrected bool) {
	umi = strings.ToUpper(umi)
	entry, found := c.table[umi]
	if found {
		return entry.knownUMI, entry.edits, entry.knownUMI != umi
	}
	return umi, -1, false
}

// allKmers returns every k-mer over the given alphabet.
func allKmers(k int, alphabet []byte) []string {
	kmers := []string{""}
	for i := 0; i < k; i++ {
		next := make([]string, 0, len(kmers)*len(alphabet))
		for _, partial := range kmers {
			for _, c := range alphabet {
				next = append(next, partial+string(c))
			}
		}
		kmers = next
	}
	return kmers
}
