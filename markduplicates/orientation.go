package markduplicates

import "fmt"

// orientationPartition is an orientation-pure sublist of a group,
// together with the index of each member in the original group.
type orientationPartition struct {
	orientation Orientation
	ends        DuplicateGroup
	indices     []int
}

// partitionByOrientation splits group into FR and RF sublists when
// both occur. Optical comparisons are only meaningful between read
// ends whose first-sequenced mate appears on the same side, so the two
// sublists are classified independently. When only one orientation
// occurs, the whole group is returned as the single partition.
func partitionByOrientation(group DuplicateGroup) ([]orientationPartition, error) {
	var hasFR, hasRF bool
	for _, e := range group {
		switch e.Orientation {
		case FR:
			hasFR = true
		case RF:
			hasRF = true
		default:
			return nil, UnexpectedOrientationError{
				fmt.Sprintf("read %s has orientation %v, expected FR or RF", e.Name, e.Orientation)}
		}
	}
	if !(hasFR && hasRF) {
		indices := make([]int, len(group))
		for i := range indices {
			indices[i] = i
		}
		o := FR
		if hasRF {
			o = RF
		}
		return []orientationPartition{{orientation: o, ends: group, indices: indices}}, nil
	}

	partitions := []orientationPartition{{orientation: FR}, {orientation: RF}}
	for i, e := range group {
		p := &partitions[0]
		if e.Orientation == RF {
			p = &partitions[1]
		}
		p.ends = append(p.ends, e)
		p.indices = append(p.indices, i)
	}
	return partitions, nil
}

// mergePartitionFlags scatters the per-partition flags back into one
// slice ordered like the original group of size n.
func mergePartitionFlags(n int, partitions []orientationPartition, flags [][]bool) []bool {
	merged := make([]bool, n)
	for i, p := range partitions {
		for j, idx := range p.indices {
			merged[idx] = flags[i][j]
		}
	}
	return merged
}
