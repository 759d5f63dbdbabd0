// Package groupio reads duplicate groups from TSV files and writes
// duplicate set assignments and metrics as TSV.
//
// The input has a header row naming the columns
//
//   GROUP NAME LIBRARY REF POS ORIENTATION UMI
//
// and consecutive rows with the same GROUP value form one duplicate
// group. NAME must be an Illumina read name, from which the physical
// location is parsed. ORIENTATION is one of F, R, FF, FR, RF or RR.
// UMI may be empty.
//
// Paths ending in ".gz" are gzip compressed.
package groupio
