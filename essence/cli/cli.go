// Package cli implements the essence command line interface.
//
// # License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
package cli

import (
	"context"
	"os"

	"github.com/npillmayer/essence"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "essence [files]",
	Short: "A parser for the Essence constraint modelling language",
	Long: `Welcome to Essence V0.1 (experimental)

essence checks models written in the Essence constraint modelling language
and reports lexical, syntax and structural errors.

If called without files, or with flag -i, essence prompts for statements
and expressions in a terminal REPL.

`,
	Run: runCheckCmd,
}

var checkCmd = &cobra.Command{
	Use:   "check files...",
	Short: "Check models for errors",
	Args:  cobra.MinimumNArgs(1),
	Run:   runCheckCmd,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt files...",
	Short: "Print models in canonical form",
	Args:  cobra.MinimumNArgs(1),
	Run:   runFmtCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by main().
func Execute() {
	rootCmd.AddCommand(checkCmd, fmtCmd)
	if rootCmd.Execute() != nil {
		essence.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	flags := rootCmd.PersistentFlags()
	flags.BoolP("interactive", "i", false, "Force run in interactive mode")
	flags.String("logfile", "stderr", "URL of log output location")
	flags.String("config", "", "Configuration file (TOML)")
	flags.String("format", "text", "Output format for diagnostics: text | pretty | yaml")
	flags.Bool("validate", true, "Run structural checks on syntactically correct models")
	flags.Bool("color", true, "Colorize output")
	flags.Bool("tokens", false, "List the tokens of every model")
}

func signalContext() context.Context {
	if essence.SignalContext == nil {
		return context.Background()
	}
	return essence.SignalContext
}

func runCheckCmd(cmd *cobra.Command, args []string) {
	setupColors()
	interactive := configBool("interactive")
	if len(args) == 0 {
		interactive = true
	}
	failed := 0
	if len(args) > 0 {
		results := checkFiles(signalContext(), args)
		if configBool("tokens") {
			for _, r := range results {
				if r.err == nil {
					printTokens(os.Stdout, r.name, r.model.Source)
				}
			}
		}
		failed = report(os.Stdout, results, configString("format"))
	}
	if interactive {
		runREPL()
		return
	}
	if failed > 0 {
		essence.Exit(1)
	}
}

func runFmtCmd(cmd *cobra.Command, args []string) {
	setupColors()
	results := checkFiles(signalContext(), args)
	if failed := formatModels(os.Stdout, os.Stderr, results); failed > 0 {
		essence.Exit(1)
	}
}
