package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCommand создаёт команду export: пишет файл выгрузки истории на диск.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write calculation history to calculator_export_<ts>.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.app.Export(cmd.Context(), outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for the export file")
	return cmd
}
