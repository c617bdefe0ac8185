package catalog

import "github.com/vmunix/mediatheque/pkg/title"

// sagaThreshold is the similarity cutoff for joining an existing cluster.
const sagaThreshold = 0.7

type sagaCluster struct {
	baseTitle string
	items     []MediaItem
}

// detectSagaClusters groups items whose cluster keys are similar enough to
// belong to one franchise. An item joins the first cluster crossing the
// threshold, in item order, not the best-scoring one; clusters are never
// merged or re-optimized afterwards. Only clusters with at least two members
// are returned.
func detectSagaClusters(items []MediaItem) []sagaCluster {
	var clusters []sagaCluster
	for _, it := range items {
		key := title.ClusterKey(it.OriginalFileName)
		placed := false
		for i := range clusters {
			if title.Similarity(key, clusters[i].baseTitle) > sagaThreshold {
				clusters[i].items = append(clusters[i].items, it)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, sagaCluster{baseTitle: key, items: []MediaItem{it}})
		}
	}

	var out []sagaCluster
	for _, c := range clusters {
		if len(c.items) > 1 {
			out = append(out, c)
		}
	}
	return out
}
