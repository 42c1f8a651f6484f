package cli

import (
	"github.com/spf13/cobra"

	"github.com/mhalvors/golevels/pkg/summary"
)

// archiveCommand creates the summary archive inspection command.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect stored summary tables",
	}

	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveExportCommand())

	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived summaries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			infos, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("Archive is empty")
				return nil
			}
			for _, info := range infos {
				printInfo("%s", shortHash(info.Snapshot))
				printDetail("data version: %s", info.DataVersion)
				printDetail("created: %s", info.CreatedAt.Format("2006-01-02 15:04:05"))
				if info.Rows > 0 {
					printDetail("rows: %d", info.Rows)
				}
			}
			return nil
		},
	}
}

// archiveExportCommand creates the "archive export" subcommand.
func (c *CLI) archiveExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <snapshot>",
		Short: "Export an archived summary to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			entry, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = "summary.tsv"
			}
			if err := summary.WriteFile(entry.Table, output); err != nil {
				return err
			}
			printSuccess("Exported %d rows", entry.Table.Len())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default summary.tsv)")
	return cmd
}
