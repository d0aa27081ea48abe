package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/lemonberrylabs/rx/pkg/dice"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

// options is the resolved configuration of one invocation. Flags take
// precedence over environment variables.
type options struct {
	Individual bool
	Rolls      int
	Output     string
	NoColor    bool
	Source     dice.Source
}

func loadOptions(cmd *cobra.Command) (options, error) {
	var opts options

	opts.Individual, _ = cmd.Flags().GetBool("individual")
	opts.NoColor, _ = cmd.Flags().GetBool("no-color")

	opts.Rolls = 1
	if v := os.Getenv("RX_ROLLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Printf("Warning: ignoring invalid RX_ROLLS %q", v)
		} else {
			opts.Rolls = n
		}
	}
	if cmd.Flags().Changed("rolls") {
		v, _ := cmd.Flags().GetInt("rolls")
		if v < 1 {
			return options{}, fmt.Errorf("--rolls must be positive, got %d", v)
		}
		opts.Rolls = v
	}

	opts.Output = envOrDefault("RX_OUTPUT", outputText)
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		opts.Output = v
	}
	switch opts.Output {
	case outputText, outputYAML, outputJSON:
	default:
		return options{}, fmt.Errorf("unsupported output format %q (want text, yaml or json)", opts.Output)
	}

	seed := os.Getenv("RX_SEED")
	if v, _ := cmd.Flags().GetString("seed"); v != "" {
		seed = v
	}
	if seed == "" {
		opts.Source = dice.NewRandomSource()
	} else {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return options{}, fmt.Errorf("invalid seed %q: %w", seed, err)
		}
		opts.Source = dice.NewSource(n)
	}

	return opts, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
