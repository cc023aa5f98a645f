package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mydehq/mediafilename/internal/journal"
	"github.com/mydehq/mediafilename/internal/ui"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past runs, or the renames of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := journal.Open(cmd.Context(), globalCfg.StateDir)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 1 {
			return showRun(cmd.Context(), cmd.OutOrStdout(), store, args[0])
		}
		return listRuns(cmd.Context(), cmd.OutOrStdout(), store, flagHistoryLimit)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "number of runs to show")
	RootCmd.AddCommand(historyCmd)
}

func listRuns(ctx context.Context, w io.Writer, store *journal.Store, limit int) error {
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Offset,
			r.Target,
			strconv.Itoa(r.Resolved),
			strconv.Itoa(r.Skipped),
		})
	}
	fmt.Fprintln(w, ui.RenderTable(
		[]string{"ID", "Started", "Offset", "Target", "Renamed", "Skipped"},
		rows,
		[]ui.Align{ui.AlignLeft, ui.AlignLeft, ui.AlignLeft, ui.AlignLeft, ui.AlignRight, ui.AlignRight},
	))
	return nil
}

func showRun(ctx context.Context, w io.Writer, store *journal.Store, id string) error {
	run, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s  %s  %s\n",
		ui.StyleHeader.Render("Run"), ui.StyleName.Render(run.ID),
		run.StartedAt.Local().Format(time.DateTime),
		ui.StylePath.Render(run.Target))

	results, err := store.Renames(ctx, id)
	if err != nil {
		return err
	}
	skips, err := store.Skips(ctx, id)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		fmt.Fprintln(w, ui.ResultsTable(results))
	}
	if len(skips) > 0 {
		fmt.Fprintln(w, ui.SkipsTable(skips))
	}
	return nil
}
