package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-answer/internal/answer"
	"github.com/robalobadob/wordle-answer/internal/archive"
	"github.com/robalobadob/wordle-answer/internal/store"
	"github.com/robalobadob/wordle-answer/internal/words"
)

var (
	flagLimit int
	flagCSV   bool
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the archive snapshot",
}

var archiveRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-scrape the archive page and rewrite the snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := archiveCache()
		if err != nil {
			return err
		}
		if !c.Enabled() {
			return fmt.Errorf("ARCHIVE_URL is not set")
		}
		snap, err := c.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d answers written to %s\n", len(snap.Records), c.Path)
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived answers, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := archiveCache()
		if err != nil {
			return err
		}
		recs, err := c.Records(cmd.Context())
		if err != nil {
			return err
		}
		if flagLimit > 0 && len(recs) > flagLimit {
			recs = recs[:flagLimit]
		}
		if flagCSV {
			return archive.WriteCSV(cmd.OutOrStdout(), recs)
		}
		renderTable(cmd.OutOrStdout(), recs)
		return nil
	},
}

func init() {
	archiveListCmd.Flags().IntVar(&flagLimit, "limit", 30, "maximum rows to show (0 for all)")
	archiveListCmd.Flags().BoolVar(&flagCSV, "csv", false, "print CSV instead of a table")

	archiveCmd.AddCommand(archiveRefreshCmd)
	archiveCmd.AddCommand(archiveListCmd)
}

func archiveCache() (*archive.Cache, error) {
	comps, err := answer.Build(cfg, store.NewMemoryStore())
	if err != nil {
		return nil, err
	}
	return comps.Archive, nil
}

func renderTable(w io.Writer, recs []words.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Date", "Wordle #", "Answer"})
	for _, r := range recs {
		t.AppendRow(table.Row{r.Date, r.PuzzleNumber, r.Answer})
	}
	t.AppendFooter(table.Row{"", "Total", len(recs)})
	t.Render()
}
