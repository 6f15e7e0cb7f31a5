package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netsurf-plan9/libcss/format"
	"github.com/netsurf-plan9/libcss/language"
	"github.com/netsurf-plan9/libcss/stylesheet"
)

func newDecodeCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode style bytecode given in hex",
		Example: `  libcss decode 30000002 00280000 00000000
  libcss decode --format json 30080000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Map(func(r rune) rune {
				if r == ' ' || r == ':' {
					return -1
				}
				return r
			}, strings.Join(args, ""))

			b, err := hex.DecodeString(text)
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}

			enc, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return enc.Encode([]language.Result{{Style: &stylesheet.Style{Bytecode: b}}})
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "text", "output format (text, json)")

	return cmd
}
