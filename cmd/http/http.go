package http

import "github.com/spf13/cobra"

func NewHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Commands for the clinic HTTP API server",
	}

	cmd.AddCommand(NewStartCommand())

	return cmd
}
