package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhalvors/golevels/pkg/ontology"
	"github.com/mhalvors/golevels/pkg/pipeline"
	"github.com/mhalvors/golevels/pkg/store"
	"github.com/mhalvors/golevels/pkg/summary"
)

// computeOpts holds the command-line flags for the compute command.
type computeOpts struct {
	output     string // output file path
	format     string // tsv or json
	ontologies string // comma-separated selectors, empty means all
	refresh    bool   // bypass stage cache
	noCache    bool   // disable caching entirely
	serial     bool   // disable per-ontology parallelism
	save       bool   // archive the result in the summary store
}

// computeCommand creates the compute command, the main entry point of the
// tool.
func (c *CLI) computeCommand() *cobra.Command {
	opts := computeOpts{}

	cmd := &cobra.Command{
		Use:   "compute <snapshot.obo>",
		Short: "Compute the per-term level summary from an OBO snapshot",
		Long: `Compute, for every term of a Gene Ontology snapshot, the shortest and
longest path length from its ontology root and whether it is a terminal
(leaf) node, then merge the three ontologies into one summary table.

Examples:
  golevels compute go-basic.obo
  golevels compute go-basic.obo -o levels.json --format json
  golevels compute go-basic.obo --ontology bp,mf
  golevels compute go-basic.obo --refresh --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompute(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default summary.<format>)")
	cmd.Flags().StringVar(&opts.format, "format", c.Config.Output.Format, "output format (tsv or json)")
	cmd.Flags().StringVar(&opts.ontologies, "ontology", "", "ontologies to compute (comma-separated: bp,cc,mf; default all)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.serial, "serial", false, "compute ontologies one at a time")
	cmd.Flags().BoolVar(&opts.save, "save", false, "archive the result in the summary store")

	return cmd
}

func (c *CLI) runCompute(ctx context.Context, oboPath string, opts computeOpts) error {
	onts, err := parseOntologies(opts.ontologies)
	if err != nil {
		return err
	}
	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := newSpinner(ctx, fmt.Sprintf("computing levels for %s", oboPath))
	sp.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		OBOPath:    oboPath,
		Ontologies: onts,
		Format:     opts.format,
		Refresh:    opts.refresh,
		Serial:     opts.serial,
		Logger:     c.Logger,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = "summary." + opts.format
	}
	if err := summary.WriteFile(result.Table, output); err != nil {
		return err
	}

	terminal := 0
	for _, r := range result.Table.Records {
		if r.TerminalNode {
			terminal++
		}
	}

	printSuccess("Computed levels for %d terms", result.Table.Len())
	printFile(output)
	printStats(result.Table.Len(), terminal, result.CacheInfo.SummaryHit)
	if result.DataVersion != "" {
		printDetail("Snapshot: %s", result.DataVersion)
	}
	for _, ont := range ontology.All {
		if n, ok := result.Stats.NodeCounts[ont]; ok {
			printDetail("%s: %d terms", ont, n)
		}
	}

	if opts.save {
		if err := c.archiveResult(ctx, result); err != nil {
			return err
		}
		printDetail("Archived as %s", shortHash(result.SourceHash))
	}
	return nil
}

func (c *CLI) archiveResult(ctx context.Context, result *pipeline.Result) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	return st.Save(ctx, store.Entry{
		Snapshot:    result.SourceHash,
		DataVersion: result.DataVersion,
		CreatedAt:   time.Now().UTC(),
		Table:       result.Table,
	})
}

// parseOntologies converts a comma-separated selector string into a list of
// ontologies. Empty input selects all three.
func parseOntologies(s string) ([]ontology.Ontology, error) {
	if s == "" {
		return nil, nil
	}
	var onts []ontology.Ontology
	for _, part := range strings.Split(s, ",") {
		ont, err := ontology.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		onts = append(onts, ont)
	}
	return onts, nil
}

// shortHash abbreviates a snapshot hash for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
