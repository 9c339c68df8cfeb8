package model

import "sort"

// SortBySize sorts nodes by size descending, then by name ascending
func SortBySize(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		si, sj := nodes[i].Size, nodes[j].Size
		if si != sj {
			return si > sj
		}
		return nodes[i].Name < nodes[j].Name
	})
}
