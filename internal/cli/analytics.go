package cli

import (
	"github.com/spf13/cobra"
)

// NewAnalyticsCommand создаёт команду analytics: события из Kafka пишутся в ClickHouse.
func NewAnalyticsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Consume calculation events from Kafka into ClickHouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()
			return opts.app.RunAnalytics(ctx)
		},
	}
}
