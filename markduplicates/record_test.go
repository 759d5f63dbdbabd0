package markduplicates

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chr1, _       = sam.NewReference("chr1", "", "", 1000, nil, nil)
	chr2, _       = sam.NewReference("chr2", "", "", 2000, nil, nil)
	testHeader, _ = sam.NewHeader(nil, []*sam.Reference{chr1, chr2})

	r1F = sam.Paired | sam.Read1
	r1R = sam.Paired | sam.Read1 | sam.Reverse
	r2F = sam.Paired | sam.Read2
	r2R = sam.Paired | sam.Read2 | sam.Reverse
	s1F = sam.Paired | sam.Read1 | sam.MateUnmapped
	s2R = sam.Paired | sam.Read2 | sam.Reverse | sam.MateUnmapped
)

func newRecord(name string, flags sam.Flags, auxs ...sam.Aux) *sam.Record {
	r := sam.GetFromFreePool()
	r.Name = name
	r.Ref = chr1
	r.Pos = 10
	r.MateRef = chr1
	r.MatePos = 20
	r.Flags = flags
	r.AuxFields = append(sam.AuxFields{}, auxs...)
	return r
}

func newAux(name string, val interface{}) sam.Aux {
	aux, err := sam.NewAux(sam.NewTag(name), val)
	if err != nil {
		panic(err)
	}
	return aux
}

func TestGetR1R2Orientation(t *testing.T) {
	tests := []struct {
		flags    sam.Flags
		expected Orientation
	}{
		{r1F, FF},
		{r1F | sam.MateReverse, FR},
		{r1R, RF},
		{r1R | sam.MateReverse, RR},
		// For R2, the mate's strand comes first.
		{r2R, FR},
		{r2F | sam.MateReverse, RF},
		{r2F, FF},
		{s1F, F},
		{s2R, R},
		{0, F},
		{sam.Reverse, R},
	}
	for _, test := range tests {
		o, err := GetR1R2Orientation(newRecord("A:1:1101:1:1", test.flags))
		require.NoError(t, err, "flags %v", test.flags)
		assert.Equal(t, test.expected, o, "flags %v", test.flags)
	}

	_, err := GetR1R2Orientation(newRecord("A:1:1101:1:1", sam.Paired|sam.Read1|sam.Read2))
	assert.Error(t, err)
	_, err = GetR1R2Orientation(newRecord("A:1:1101:1:1", sam.Paired))
	assert.Error(t, err)
}

func TestGetLibrary(t *testing.T) {
	rgLibrary := map[string]string{"rg1": "libA", "rg2": ""}
	assert.Equal(t, "libA", GetLibrary(rgLibrary, newRecord("a", r1F, newAux("RG", "rg1"))))
	assert.Equal(t, unknownLibrary, GetLibrary(rgLibrary, newRecord("a", r1F, newAux("RG", "rg2"))))
	assert.Equal(t, unknownLibrary, GetLibrary(rgLibrary, newRecord("a", r1F, newAux("RG", "rg3"))))
	assert.Equal(t, unknownLibrary, GetLibrary(rgLibrary, newRecord("a", r1F)))
}

func TestNewReadEndFromRecord(t *testing.T) {
	rgLibrary := map[string]string{"rg1": "libA"}
	r := newRecord("M0:R1:FC:2:1203:100:200", r1F|sam.MateReverse, newAux("RG", "rg1"), newAux("RX", "ACGT"))
	e, err := NewReadEndFromRecord(rgLibrary, r)
	require.NoError(t, err)
	assert.Equal(t, &ReadEnd{
		Name:        "M0:R1:FC:2:1203:100:200",
		Library:     "libA",
		RefID:       chr1.ID(),
		Pos:         10,
		Orientation: FR,
		Location:    PhysicalLocation{Lane: 2, Surface: 1, Swath: 2, TileNumber: 3, TileName: 1203, X: 100, Y: 200},
		Umi:         "ACGT",
	}, e)

	// No RX tag.
	e, err = NewReadEndFromRecord(rgLibrary, newRecord("A:1:1101:5:6", r2R))
	require.NoError(t, err)
	assert.Equal(t, "", e.Umi)
	assert.Equal(t, FR, e.Orientation)
	assert.Equal(t, unknownLibrary, e.Library)

	_, err = NewReadEndFromRecord(rgLibrary, newRecord("not-illumina", r1F))
	assert.Error(t, err)
}

func TestReadGroupLibraries(t *testing.T) {
	h, err := sam.NewHeader([]byte("@HD\tVN:1.4\tSO:coordinate\n@RG\tID:rg1\tLB:libA\tSM:s1\n@RG\tID:rg2\tLB:libB\tSM:s1\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rg1": "libA", "rg2": "libB"}, ReadGroupLibraries(h))
}
