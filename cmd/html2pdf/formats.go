package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// formatEntry is one catalog row as printed by the formats command.
type formatEntry struct {
	ID          string `yaml:"id"`
	PageSize    string `yaml:"pageSize"`
	Viewport    string `yaml:"viewport"`
	Description string `yaml:"description"`
}

// formatEntries flattens the catalog in table order.
func formatEntries() []formatEntry {
	return lo.Map(html2pdf.Formats(), func(p html2pdf.FormatProfile, _ int) formatEntry {
		viewport := "engine default"
		if p.HasViewport() {
			viewport = fmt.Sprintf("%dx%d", p.Viewport.Width, p.Viewport.Height)
		}
		return formatEntry{
			ID:          p.ID,
			PageSize:    p.PageSize(),
			Viewport:    viewport,
			Description: p.Description,
		}
	})
}

// runFormatsCmd prints the format catalog as a table, or as YAML with --yaml.
func runFormatsCmd(args []string, env *Environment) error {
	fs := flag.NewFlagSet("formats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asYAML := fs.Bool("yaml", false, "print the catalog as YAML")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	entries := formatEntries()

	if *asYAML {
		out, err := yamlutil.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tPAGE SIZE\tVIEWPORT\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.PageSize, e.Viewport, e.Description)
	}
	return tw.Flush()
}
