package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mydehq/mediafilename/internal/tz"
	"github.com/mydehq/mediafilename/internal/ui"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the accepted timezone codes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), zonesTable())
	},
}

func init() {
	RootCmd.AddCommand(zonesCmd)
}

func zonesTable() string {
	offsets := tz.All()
	rows := make([][]string, 0, len(offsets))
	for _, o := range offsets {
		rows = append(rows, []string{o.Code(), o.String()})
	}
	return ui.RenderTable([]string{"Code", "Offset"}, rows, []ui.Align{ui.AlignLeft, ui.AlignRight})
}
