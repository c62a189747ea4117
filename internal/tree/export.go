package tree

import (
	"bufio"
	"io"
	"strings"
)

// ExportMarkdown writes the outline as a nested bullet list, two spaces of
// indentation per level. Collapsed subtrees are included.
func (e *Engine) ExportMarkdown(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var werr error
	e.Walk(func(n *Node, _ *Node, depth int) bool {
		label := strings.Join(strings.Fields(n.Label), " ")
		_, werr = bw.WriteString(strings.Repeat("  ", depth) + "- " + label + "\n")
		return werr == nil
	})
	if werr != nil {
		return werr
	}
	return bw.Flush()
}
