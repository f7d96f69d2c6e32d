package cli

import (
	"github.com/spf13/cobra"
)

// NewServeCommand создаёт команду serve: HTTP- и gRPC-серверы до SIGINT/SIGTERM.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP and gRPC servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *RootOptions) error {
	ctx, stop := signalContext(cmd)
	defer stop()
	return opts.app.Run(ctx)
}
