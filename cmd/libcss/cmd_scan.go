package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/netsurf-plan9/libcss/intern"
	"github.com/netsurf-plan9/libcss/token"
)

func newScanCmd() *cobra.Command {
	var (
		file       string
		whitespace bool
	)

	cmd := &cobra.Command{
		Use:   "scan [text...]",
		Short: "Print the tokens the compiler sees",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, name, err := readInput(file, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lexer := token.NewLexer(input, name, intern.New())
			count := 0
			for {
				tok, err := lexer.NextToken()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}
				if tok.Kind == token.TokenWhitespace && !whitespace {
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Span.Start, tok.Kind, strconv.Quote(tok.Data))
				count++
			}
			fmt.Fprintf(out, "%d tokens\n", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read input from a file, - for stdin")
	cmd.Flags().BoolVarP(&whitespace, "whitespace", "w", false, "include whitespace tokens")

	return cmd
}
