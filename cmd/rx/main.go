// Package main is the entry point for the rx dice roller.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/lemonberrylabs/rx/pkg/dice"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rx [flags] <dice>",
		Short: "Rolls dice.",
		Long: `Rolls dice written in dice notation, for example:

  rx 2d6+3
  rx -i 4d6kh3
  rx -r 6 "1d20 + 5 >= 15"

Whitespace inside the expression is ignored.`,
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	cmd.SetVersionTemplate("rx version {{.Version}}\n")

	cmd.Flags().BoolP("individual", "i", false, "Show every die rolled")
	cmd.Flags().BoolP("sum", "s", false, "Show only the total of each roll (default)")
	cmd.Flags().IntP("rolls", "r", 0, "Number of times to roll (default 1, env RX_ROLLS)")
	cmd.Flags().String("seed", "", "Seed for reproducible rolls (env RX_SEED)")
	cmd.Flags().StringP("output", "o", "", "Output format: text, yaml or json (default text, env RX_OUTPUT)")
	cmd.Flags().Bool("no-color", false, "Disable coloured output")
	cmd.MarkFlagsMutuallyExclusive("individual", "sum")

	return cmd
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if opts.NoColor {
		color.NoColor = true
	}

	// The tokenizer does not skip whitespace.
	input := strings.Join(strings.Fields(strings.Join(args, "")), "")

	expr, err := dice.ParseExpression(input)
	if err != nil {
		if pos, ok := errorPosition(err); ok {
			cmd.PrintErrln("  " + input)
			cmd.PrintErrln("  " + strings.Repeat(" ", pos) + "^")
		}
		return fmt.Errorf("parsing %q: %w", input, err)
	}

	reports := make([]rollReport, 0, opts.Rolls)
	for i := 0; i < opts.Rolls; i++ {
		result, err := dice.Evaluate(expr, opts.Source)
		if err != nil {
			return fmt.Errorf("rolling %q: %w", input, err)
		}
		reports = append(reports, newRollReport(expr, result, opts.Individual))
	}

	return writeReports(cmd.OutOrStdout(), opts.Output, reports)
}

// errorPosition returns the source offset carried by lexer and parser errors.
func errorPosition(err error) (int, bool) {
	var lexErr *dice.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var parseErr *dice.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Pos, true
	}
	return 0, false
}
