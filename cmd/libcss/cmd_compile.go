package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/netsurf-plan9/libcss"
	"github.com/netsurf-plan9/libcss/format"
	"github.com/netsurf-plan9/libcss/intern"
	"github.com/netsurf-plan9/libcss/language"
	"github.com/netsurf-plan9/libcss/properties"
	"github.com/netsurf-plan9/libcss/stylesheet"
	"github.com/netsurf-plan9/libcss/token"
)

func newCompileCmd() *cobra.Command {
	var (
		outputFormat string
		file         string
		quirks       bool
		memoryLimit  int
		rules        bool
	)

	cmd := &cobra.Command{
		Use:          "compile [declarations...]",
		Short:        "Compile declarations and print their bytecode",
		SilenceUsage: true,
		Example: `  libcss compile 'margin-top: 10px; margin: 0 auto !important'
  libcss compile --quirks 'margin-left: 4'
  libcss compile -f site.css --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, name, err := readInput(file, args)
			if err != nil {
				return err
			}

			var opts []stylesheet.Option
			if quirks {
				opts = append(opts, stylesheet.WithQuirks())
			}
			if memoryLimit > 0 {
				opts = append(opts, stylesheet.WithMemoryLimit(memoryLimit))
			}
			if filepath.Ext(name) == ".css" {
				rules = true
			}

			results, sheet, err := compile(input, name, rules, opts...)
			if err != nil {
				return err
			}

			enc, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := enc.Encode(results); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			log := commonlog.GetLogger("libcss.compile")
			log.Infof("%d declarations, %d failed, %d bytes, quirks used: %t", len(results), failed, sheet.Size(), sheet.QuirksUsed())

			if failed > 0 {
				return fmt.Errorf("%d of %d declarations failed to compile", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", "text", "output format (text, json)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read input from a file, - for stdin")
	cmd.Flags().BoolVar(&quirks, "quirks", false, "accept quirks mode values such as unitless lengths")
	cmd.Flags().IntVar(&memoryLimit, "memory-limit", 0, "cap the bytecode size in bytes (0 for no limit)")
	cmd.Flags().BoolVar(&rules, "stylesheet", false, "read the input as rule sets instead of a declaration list")

	return cmd
}

// compile runs the declaration or rule parser over input. A '}' left over
// by a declaration list is reported as an error result.
func compile(input []byte, name string, rules bool, opts ...stylesheet.Option) ([]language.Result, *stylesheet.Sheet, error) {
	names := intern.New()
	vec, err := token.Lex(input, name, names)
	if err != nil {
		return nil, nil, err
	}

	sheet := stylesheet.New(opts...)
	c := properties.NewLanguage(sheet, names)
	if rules {
		return language.ParseStylesheet(c, vec), sheet, nil
	}

	ctx := 0
	results := language.ParseDeclarations(c, vec, &ctx)
	if tok := vec.Peek(ctx); tok != nil && tok.Kind == token.TokenRBrace {
		results = append(results, language.Result{
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Err:   &language.SyntaxError{Pos: tok.Span.Start, Message: "unexpected " + tok.Data, Err: libcss.ErrInvalid},
		})
	}
	return results, sheet, nil
}
