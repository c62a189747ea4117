package state

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/mindmap-tui/internal/tree"
)

// Match is a search hit anywhere in the tree, including under collapsed
// nodes.
type Match struct {
	ID       int64
	Label    string
	Distance int
	// Path joins the labels of the node's ancestors, outermost first.
	Path string
}

const pathSeparator = " › "

// Search ranks every node label against query. Ties keep traversal order.
func Search(e *tree.Engine, query string) []Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	var nodes []*tree.Node
	var labels []string
	e.Walk(func(n, _ *tree.Node, _ int) bool {
		nodes = append(nodes, n)
		labels = append(labels, n.Label)
		return true
	})
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return nil
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	matches := make([]Match, len(ranks))
	for i, rank := range ranks {
		n := nodes[rank.OriginalIndex]
		matches[i] = Match{
			ID:       n.ID,
			Label:    n.Label,
			Distance: rank.Distance,
			Path:     ancestorPath(e, n),
		}
	}
	return matches
}

func ancestorPath(e *tree.Engine, n *tree.Node) string {
	chain := e.Path(n)
	if len(chain) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(chain)-1)
	for _, a := range chain[:len(chain)-1] {
		parts = append(parts, a.Label)
	}
	return strings.Join(parts, pathSeparator)
}
