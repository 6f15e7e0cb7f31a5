package main

import (
	"github.com/spf13/cobra"

	"github.com/netsurf-plan9/libcss/lsp"
	"github.com/netsurf-plan9/libcss/stylesheet"
)

func newLSPCmd() *cobra.Command {
	var quirks bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []stylesheet.Option
			if quirks {
				opts = append(opts, stylesheet.WithQuirks())
			}
			server := lsp.NewServer(version, opts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&quirks, "quirks", false, "accept quirks mode values such as unitless lengths")

	return cmd
}
