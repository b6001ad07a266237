// Package docsite renders the pspr Markdown docs into a static HTML site.
package docsite

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/tessro/pspr/internal/version"
)

//go:embed default.html
var defaultTemplate string

// Page is a Markdown source file, relative to the source directory.
type Page struct {
	Path   string
	Source []byte
}

// NavItem is one entry of the site navigation.
type NavItem struct {
	Title  string
	URL    string
	Active bool
}

// PageData holds data passed to the HTML template.
type PageData struct {
	Title   string
	Content template.HTML
	Nav     []NavItem
	Version string
}

// Generator generates HTML documentation from Markdown files.
type Generator struct {
	SourceDir string
	OutputDir string

	md    goldmark.Markdown
	tmpl  *template.Template
	extra []Page
}

// NewGenerator creates a documentation generator. An empty templateFile
// selects the built-in template.
func NewGenerator(sourceDir, outputDir, templateFile string) (*Generator, error) {
	g := &Generator{
		SourceDir: sourceDir,
		OutputDir: outputDir,
	}

	g.md = goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(linkTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)

	tmplContent := defaultTemplate
	if templateFile != "" {
		data, err := os.ReadFile(templateFile)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		tmplContent = string(data)
	}

	var err error
	g.tmpl, err = template.New("docs").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	return g, nil
}

// AddPage adds a generated page that has no file in the source directory.
func (g *Generator) AddPage(path string, source []byte) {
	g.extra = append(g.extra, Page{Path: path, Source: source})
}

// parsedPage is a page ready to render.
type parsedPage struct {
	Page
	title string
	doc   ast.Node
}

// Generate renders every page into the output directory.
func (g *Generator) Generate() error {
	pages, err := g.collect()
	if err != nil {
		return err
	}

	parsed := make([]parsedPage, 0, len(pages))
	for _, p := range pages {
		pc := parser.NewContext()
		pc.Set(pageKey, p.Path)
		doc := g.md.Parser().Parse(text.NewReader(p.Source), parser.WithContext(pc))
		parsed = append(parsed, parsedPage{
			Page:  p,
			title: titleOf(doc, p.Source, p.Path),
			doc:   doc,
		})
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for i := range parsed {
		if err := g.render(parsed, i); err != nil {
			return err
		}
	}
	return nil
}

// collect reads the source directory plus added pages, index first and
// the rest by path.
func (g *Generator) collect() ([]Page, error) {
	var pages []Page

	if g.SourceDir != "" {
		err := filepath.WalkDir(g.SourceDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".md") {
				return nil
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			rel, err := filepath.Rel(g.SourceDir, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			pages = append(pages, Page{Path: filepath.ToSlash(rel), Source: content})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	pages = append(pages, g.extra...)

	sort.SliceStable(pages, func(i, j int) bool {
		ii, ji := pages[i].Path == "index.md", pages[j].Path == "index.md"
		if ii != ji {
			return ii
		}
		return pages[i].Path < pages[j].Path
	})
	return pages, nil
}

func (g *Generator) render(pages []parsedPage, current int) error {
	p := pages[current]

	var htmlBuf bytes.Buffer
	if err := g.md.Renderer().Render(&htmlBuf, p.Source, p.doc); err != nil {
		return fmt.Errorf("converting %s: %w", p.Path, err)
	}

	nav := make([]NavItem, len(pages))
	for i, other := range pages {
		nav[i] = NavItem{Title: other.title, URL: navURL(p.Path, other.Path), Active: i == current}
	}

	data := PageData{
		Title:   p.title,
		Content: template.HTML(htmlBuf.String()),
		Nav:     nav,
		Version: version.Resolved(),
	}

	var outBuf bytes.Buffer
	if err := g.tmpl.Execute(&outBuf, data); err != nil {
		return fmt.Errorf("executing template for %s: %w", p.Path, err)
	}

	outputPath := MapPath(g.OutputDir, p.Path)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, outBuf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

// titleOf returns the text of the first H1, falling back to the file name.
func titleOf(doc ast.Node, source []byte, path string) string {
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = nodeText(h, source)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if title != "" {
		return title
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
				if t.SoftLineBreak() {
					b.WriteByte(' ')
				}
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// MapPath returns the output file for a page using pretty URLs:
// foo.md becomes foo/index.html, index.md stays index.html.
func MapPath(outputDir, pagePath string) string {
	rel := strings.TrimSuffix(filepath.FromSlash(pagePath), ".md")
	if filepath.Base(rel) == "index" {
		return filepath.Join(outputDir, rel+".html")
	}
	return filepath.Join(outputDir, rel, "index.html")
}

// MapURL returns the site-relative URL of a page.
func MapURL(pagePath string) string {
	rel := strings.TrimSuffix(pagePath, ".md")
	switch {
	case rel == "index":
		return "./"
	case strings.HasSuffix(rel, "/index"):
		return "./" + strings.TrimSuffix(rel, "index")
	default:
		return "./" + rel + "/"
	}
}

// navURL returns the link from one page to another, relative to the
// directory the first page is rendered into.
func navURL(from, to string) string {
	dir := strings.TrimPrefix(MapURL(from), "./")
	target := strings.TrimPrefix(MapURL(to), "./")
	up := strings.Repeat("../", strings.Count(dir, "/"))
	if up == "" {
		return "./" + target
	}
	return up + target
}
