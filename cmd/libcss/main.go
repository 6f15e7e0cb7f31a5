package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var (
		verbose int
		logPath string
	)

	rootCmd := &cobra.Command{
		Use:     "libcss",
		Short:   "Compile CSS declarations to style bytecode",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logPath != "" {
				commonlog.Configure(verbose, &logPath)
			} else {
				commonlog.Configure(verbose, nil)
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
