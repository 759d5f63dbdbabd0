package markduplicates

import (
	"github.com/antzucaro/matchr"
	"github.com/grailbio/base/log"
)

// umiMaxMismatches is the largest Hamming distance at which two
// molecular tags are adjacent in the tag graph.
const umiMaxMismatches = 1

// splitByUmi partitions group into sub-groups whose members carry
// molecular tags connected by chains of tags at most
// umiMaxMismatches apart. Sub-groups are returned in the order in
// which their first tag appears in group, and members keep their
// relative order. A group in which no member carries a tag is returned
// unchanged as the only sub-group.
func splitByUmi(group DuplicateGroup) ([]DuplicateGroup, error) {
	// Distinct tags in order of first observation.
	var umis []string
	umiIndex := map[string]int{}
	tagged := false
	for _, e := range group {
		if e.Umi != "" {
			tagged = true
		}
		if _, ok := umiIndex[e.Umi]; !ok {
			umiIndex[e.Umi] = len(umis)
			umis = append(umis, e.Umi)
		}
	}
	if !tagged {
		return []DuplicateGroup{group}, nil
	}
	for _, umi := range umis[1:] {
		if len(umi) != len(umis[0]) {
			return nil, newMalformedTagError(umis[0], umi)
		}
	}
	if len(umis) == 1 {
		return []DuplicateGroup{group}, nil
	}

	clusters, err := clusterUmis(umis)
	if err != nil {
		return nil, err
	}
	nClusters := 0
	for _, c := range clusters {
		if c > nClusters {
			nClusters = c
		}
	}
	subGroups := make([]DuplicateGroup, nClusters)
	for _, e := range group {
		c := clusters[umiIndex[e.Umi]]
		subGroups[c-1] = append(subGroups[c-1], e)
	}
	if log.At(log.Debug) && nClusters > 1 {
		log.Debug.Printf("split group of %d at %d:%d into %d sets by %d umis",
			len(group), group[0].RefID, group[0].Pos, nClusters, len(umis))
	}
	return subGroups, nil
}

// clusterUmis assigns a cluster id, starting at 1, to each of the
// given equal-length tags. Two tags share a cluster when they are
// connected in the graph whose edges join tags within
// umiMaxMismatches of each other. Ids are assigned in the order in
// which the components are first reached while scanning umis.
func clusterUmis(umis []string) ([]int, error) {
	adjacency := make([][]int, len(umis))
	for i := range umis {
		for j := i + 1; j < len(umis); j++ {
			d, err := matchr.Hamming(umis[i], umis[j])
			if err != nil {
				return nil, newMalformedTagError(umis[i], umis[j])
			}
			if d <= umiMaxMismatches {
				adjacency[i] = append(adjacency[i], j)
				adjacency[j] = append(adjacency[j], i)
			}
		}
	}

	clusters := make([]int, len(umis))
	nClusters := 0
	var stack []int
	for i := range umis {
		if clusters[i] != 0 {
			continue
		}
		nClusters++
		clusters[i] = nClusters
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, m := range adjacency[n] {
				if clusters[m] == 0 {
					clusters[m] = nClusters
					stack = append(stack, m)
				}
			}
		}
	}
	return clusters, nil
}
