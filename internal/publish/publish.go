package publish

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"todo-cli/internal/core"
	"todo-cli/internal/format"
	"todo-cli/internal/store"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatText     Format = "txt"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown publish format: %s (want md|html|txt)", s)
	}
}

type WriteOptions struct {
	Format         Format
	UnfinishedOnly bool
	Overwrite      bool

	// Formatter renders FormatText output.
	Formatter format.Formatter
}

type WriteResult struct {
	Written []string `json:"written" yaml:"written"`
}

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		// Raw HTML in entry names is escaped, not passed through.
		html.WithHardWraps(),
	),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; }
ul { list-style: none; padding-left: 1.25rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderHTML renders the same task list as RenderMarkdown as a standalone page.
func RenderHTML(c *core.Core, opt RenderOptions) (string, error) {
	md, err := RenderMarkdown(c, opt)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &body); err != nil {
		return "", err
	}
	var page bytes.Buffer
	err = pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: c.Name(),
		// goldmark output is trusted only because raw HTML is disabled above.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}
	return page.String(), nil
}

// Write renders the list in opt.Format into toDir, named after the list.
// Text output follows the current view like PrintFile does.
func Write(c *core.Core, toDir string, opt WriteOptions) (WriteResult, error) {
	if c == nil {
		return WriteResult{}, errors.New("missing list")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	base := strings.TrimSuffix(core.FileName(c.Name()), core.Ext)
	ropt := RenderOptions{UnfinishedOnly: opt.UnfinishedOnly}
	var (
		out string
		err error
	)
	switch opt.Format {
	case FormatHTML:
		out, err = RenderHTML(c, ropt)
	case FormatText:
		var b strings.Builder
		err = WriteText(&b, c, opt.Formatter, opt.UnfinishedOnly)
		out = b.String()
	default:
		out, err = RenderMarkdown(c, ropt)
	}
	if err != nil {
		return WriteResult{}, err
	}

	ext := string(opt.Format)
	if ext == "" {
		ext = string(FormatMarkdown)
	}
	path := filepath.Join(toDir, base+"."+ext)
	if err := writeFile(path, []byte(out), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return store.WriteFileAtomic(path, b, 0o644)
}
