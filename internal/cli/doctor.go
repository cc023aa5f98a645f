package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mydehq/mediafilename/internal/config"
	"github.com/mydehq/mediafilename/internal/deps"
	"github.com/mydehq/mediafilename/internal/journal"
	"github.com/mydehq/mediafilename/internal/types"
	"github.com/mydehq/mediafilename/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tools and configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, ok := doctorRows(cmd, globalCfg)
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"Check", "Status", "Detail"}, rows, nil))
		if !ok {
			return errors.New("some required checks failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func doctorRows(cmd *cobra.Command, cfg *types.GlobalConfig) ([][]string, bool) {
	ok := true
	var rows [][]string

	for _, s := range deps.CheckBinaries(deps.Requirements(cfg.Exiftool)) {
		status, detail := "ok", s.Path
		if !s.Available {
			detail = s.Detail
			status = "missing"
			if s.Optional {
				status = "optional"
			} else {
				ok = false
			}
		}
		rows = append(rows, []string{s.Name, status, detail})
	}

	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, _ = config.DefaultPath()
	}
	if _, err := os.Stat(cfgPath); err == nil {
		rows = append(rows, []string{"config", "ok", cfgPath})
	} else {
		rows = append(rows, []string{"config", "defaults", cfgPath + " not found"})
	}

	if !cfg.Journal {
		rows = append(rows, []string{"history", "disabled", cfg.StateDir})
		return rows, ok
	}
	store, err := journal.Open(cmd.Context(), cfg.StateDir)
	if err != nil {
		ok = false
		rows = append(rows, []string{"history", "error", err.Error()})
		return rows, ok
	}
	defer store.Close()
	rows = append(rows, []string{"history", "ok", store.Path()})
	return rows, ok
}
