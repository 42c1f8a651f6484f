package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhalvors/golevels/pkg/dag"
	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/obo"
	"github.com/mhalvors/golevels/pkg/ontology"
	"github.com/mhalvors/golevels/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output string // output file path (stdout if empty)
	format string // dot, svg, or json
	labels bool   // include term names in node labels
}

// graphCommand creates the graph export command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: "dot"}

	cmd := &cobra.Command{
		Use:   "graph <snapshot.obo> <bp|cc|mf>",
		Short: "Export one root-outward ontology graph",
		Long: `Export one ontology graph in root-outward orientation, with the
ontology root highlighted.

Examples:
  golevels graph go-basic.obo bp                    # DOT to stdout
  golevels graph go-basic.obo mf -o mf.svg --format svg
  golevels graph go-basic.obo cc -o cc.json --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ont, err := ontology.Parse(args[1])
			if err != nil {
				return err
			}
			return c.runGraph(cmd, args[0], ont, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format (dot, svg, or json)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "include term names in node labels")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, oboPath string, ont ontology.Ontology, opts graphOpts) error {
	doc, err := obo.ParseFile(oboPath)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	g, err := ontology.Load(doc, ont)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %s graph with %d terms and %d relations", ont, g.NodeCount(), g.EdgeCount()))

	var data []byte
	switch opts.format {
	case "dot":
		dot := render.ToDOT(g, render.Options{Labels: opts.labels, Highlight: []string{ont.Root()}})
		data = []byte(dot)
	case "svg":
		dot := render.ToDOT(g, render.Options{Labels: opts.labels, Highlight: []string{ont.Root()}})
		data, err = render.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
	case "json":
		data, err = dag.Marshal(g)
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, json)", opts.format)
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote %s graph", ont)
		printFile(opts.output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method, making os.Stdout
// compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout if path is
// empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
