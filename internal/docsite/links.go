package docsite

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// pageKey holds the path of the page being parsed.
var pageKey = parser.NewContextKey()

// linkTransformer rewrites links to .md files into pretty URLs, relative
// to the directory the page is rendered into.
type linkTransformer struct{}

func (linkTransformer) Transform(doc *ast.Document, _ text.Reader, pc parser.Context) {
	page, _ := pc.Get(pageKey).(string)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Link:
			n.Destination = []byte(rebase(page, PrettyLink(string(n.Destination))))
		case *ast.Image:
			n.Destination = []byte(rebase(page, string(n.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// rebase adjusts a relative link for pages rendered one directory below
// their source (foo.md becomes foo/index.html).
func rebase(page, dest string) string {
	if page == "" || !isRelative(dest) {
		return dest
	}
	if base := strings.TrimSuffix(page[strings.LastIndexByte(page, '/')+1:], ".md"); base == "index" {
		return dest
	}
	return "../" + strings.TrimPrefix(dest, "./")
}

func isRelative(dest string) bool {
	return dest != "" &&
		!strings.Contains(dest, "://") &&
		!strings.HasPrefix(dest, "mailto:") &&
		!strings.HasPrefix(dest, "/") &&
		!strings.HasPrefix(dest, "#")
}

// PrettyLink maps a link to a .md file onto its pretty URL.
// For example ./usage.md#run becomes ./usage/#run and ./guide/index.md
// becomes ./guide/. External and non-Markdown links are returned unchanged.
func PrettyLink(dest string) string {
	if !isRelative(dest) {
		return dest
	}

	path, anchor := dest, ""
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		path, anchor = dest[:i], dest[i:]
	}
	if !strings.HasSuffix(path, ".md") {
		return dest
	}
	path = strings.TrimSuffix(path, ".md")

	switch {
	case path == "index":
		path = "./"
	case strings.HasSuffix(path, "/index"):
		path = strings.TrimSuffix(path, "index")
	default:
		path += "/"
	}
	return path + anchor
}
