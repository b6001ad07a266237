// Command docsite generates the pspr HTML documentation from Markdown files.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/tessro/pspr/internal/cli"
	"github.com/tessro/pspr/internal/docsite"
)

func main() {
	sourceDir := flag.String("source", "docs", "Source directory containing Markdown files")
	outputDir := flag.String("out", "site/public/docs", "Output directory for generated HTML files")
	templateFile := flag.String("template", "", "HTML template file (default: built-in)")
	withReference := flag.Bool("cli", true, "Add a generated command reference page")
	flag.Parse()

	gen, err := docsite.NewGenerator(*sourceDir, *outputDir, *templateFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "🎮 Error initializing generator: %v\n", err)
		os.Exit(1)
	}

	if *withReference {
		var ref bytes.Buffer
		if err := cli.WriteReference(&ref); err != nil {
			fmt.Fprintf(os.Stderr, "🎮 Error writing command reference: %v\n", err)
			os.Exit(1)
		}
		gen.AddPage("cli.md", ref.Bytes())
	}

	if err := gen.Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "🎮 Error generating docs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("🎮 Documentation generated successfully")
}
