package main

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/netsurf-plan9/libcss/ebnfmatch"
	"github.com/netsurf-plan9/libcss/properties"
)

func newGrammarCmd() *cobra.Command {
	var check string

	cmd := &cobra.Command{
		Use:   "grammar [property...]",
		Short: "Print the verified EBNF grammar of each property",
		Example: `  libcss grammar margin
  libcss grammar margin-top --check '10 px'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var props []*properties.Property
			if len(args) == 0 {
				props = properties.Properties()
			}
			for _, name := range args {
				p, ok := properties.Lookup(name)
				if !ok {
					return fmt.Errorf("unknown property: %s", name)
				}
				props = append(props, p)
			}

			out := cmd.OutOrStdout()
			for i, p := range props {
				g, err := p.Grammar()
				if err != nil {
					printErrors(cmd, err)
					return err
				}
				if cmd.Flags().Changed("check") {
					fmt.Fprintf(out, "%s\t%t\n", p.Name, ebnfmatch.Matches(g, p.Start(), []byte(check)))
					continue
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "// %s (start: %s)\n%s", p.Name, p.Start(), p.GrammarText())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&check, "check", "", "report whether each grammar derives this value instead of printing it")

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(out, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(out, err)
	}
}
