/*Package markduplicates refines position based duplicate groups into
  duplicate sets and counts their optical duplicates.

  The input is a stream of duplicate groups: read ends that an
  upstream mark-duplicates pass placed at the same locus. This package
  does not choose the primary of a group, and it does not read or
  write alignment files.

  Molecular tag splitting:

  Read ends at the same locus may still come from different source
  molecules when their molecular tags (UMIs, the RX aux field) differ.
  With Opts.UseUmis, each group is split as follows. The distinct tags
  of the group are the nodes of a graph, and two tags are joined by an
  edge when their Hamming distance is at most 1. Every connected
  component of the graph becomes one duplicate set. Components are
  found with an explicit stack, so chains like AAAA-AAAT-AATT end up in
  one set even though AAAA and AATT differ in two positions.

    tags AAAA AAAT GGGG GGGA CCCC  ->  {AAAA,AAAT} {GGGG,GGGA} {CCCC}

  Sets are emitted in order of their first member in the input group,
  and members keep their input order. A group whose members carry no
  tag is emitted unchanged. Tags of different lengths within one group
  are a MalformedTagError.

  Optionally, tags are first snap corrected against a list of known
  tags (Opts.KnownUmis), see package umi.

  Optical duplicates:

  Each set is passed to an OpticalFinder, which flags the read ends that
  are imaging artifacts of another read end in the list. Pair
  orientations are relative to the first-sequenced mate (R1), and
  optical comparisons are only made between read ends with the same
  orientation: when a set contains both FR and RF read ends, the two
  sublists are classified separately and the flags are merged back in
  set order. Other orientations are an UnexpectedOrientationError.
  The default finder, TileOpticalFinder, flags read ends on the same
  lane and tile within Opts.OpticalDistance pixels of an earlier one.

  Metrics:

  For a set of n read ends with k optical duplicates,
  DuplicateSetMetrics counts key n-1 in the size histogram, key n-1-k in
  the non-optical histogram when positive, and key k in the optical
  histogram when positive. Optical duplicates are also totalled per
  library.

  Usage:

    metrics := markduplicates.NewDuplicateSetMetrics()
    it, err := markduplicates.NewDuplicateSetIterator(groups, &opts, metrics)
    ...
    for it.Scan() {
      set, optical := it.Group(), it.OpticalFlags()
      ...
    }
    if err := it.Close(); err != nil {
      ...
    }
*/
package markduplicates
