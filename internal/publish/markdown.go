package publish

import (
	"bytes"
	"fmt"
	"strings"

	"todo-cli/internal/core"
	"todo-cli/internal/model"
)

type RenderOptions struct {
	// UnfinishedOnly drops complete entries (and with them their subtrees).
	UnfinishedOnly bool
}

// RenderMarkdown renders the subtree under the current display root as a
// GitHub-style task list headed by the root's name. The display depth does
// not apply; exports always contain the whole subtree.
func RenderMarkdown(c *core.Core, opt RenderOptions) (string, error) {
	if c == nil {
		return "", fmt.Errorf("missing list")
	}
	root, err := c.Export(c.CurrentRoot())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + mdEscape(root.Name))
	writeLn("")
	done, total := progress(root)
	writeLn(fmt.Sprintf("%d of %d done", done, total))
	writeLn("")

	for _, ch := range root.Children {
		renderTaskLine(&buf, ch, 0, opt)
	}
	return buf.String(), nil
}

func renderTaskLine(buf *bytes.Buffer, n model.Node, depth int, opt RenderOptions) {
	if opt.UnfinishedOnly && n.Complete {
		return
	}
	mark := " "
	if n.Complete {
		mark = "x"
	}
	fmt.Fprintf(buf, "%s- [%s] %s\n", strings.Repeat("  ", depth), mark, mdEscape(n.Name))
	for _, ch := range n.Children {
		renderTaskLine(buf, ch, depth+1, opt)
	}
}

// progress counts complete entries below n, not n itself.
func progress(n model.Node) (done, total int) {
	for _, ch := range n.Children {
		total++
		if ch.Complete {
			done++
		}
		d, t := progress(ch)
		done += d
		total += t
	}
	return done, total
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

func mdEscape(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	return mdEscaper.Replace(s)
}
