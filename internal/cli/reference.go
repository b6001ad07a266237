package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// WriteReference writes a Markdown reference of every pspr command.
func WriteReference(w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Command reference\n\n")
	b.WriteString("Generated from `pspr --help`.\n\n")

	if flags := rootCmd.PersistentFlags().FlagUsages(); flags != "" {
		b.WriteString("## Global flags\n\n```\n" + flags + "```\n\n")
	}

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if !sub.IsAvailableCommand() || sub.Name() == "help" {
				continue
			}
			writeCommand(&b, sub)
			walk(sub)
		}
	}
	walk(rootCmd)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCommand(b *strings.Builder, c *cobra.Command) {
	fmt.Fprintf(b, "## %s\n\n", c.CommandPath())
	desc := c.Long
	if desc == "" {
		desc = c.Short
	}
	b.WriteString(desc + "\n\n")

	if c.Runnable() {
		fmt.Fprintf(b, "```\n%s\n```\n\n", c.UseLine())
	}
	if flags := c.LocalNonPersistentFlags().FlagUsages(); flags != "" {
		b.WriteString("Flags:\n\n```\n" + flags + "```\n\n")
	}
}
