package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/lemonberrylabs/rx/pkg/dice"
	"gopkg.in/yaml.v3"
)

// rollReport is the printable outcome of one roll.
type rollReport struct {
	Expression string          `json:"expression" yaml:"expression"`
	Total      int64           `json:"total" yaml:"total"`
	Comparison string          `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	Target     *int64          `json:"target,omitempty" yaml:"target,omitempty"`
	Passed     *bool           `json:"passed,omitempty" yaml:"passed,omitempty"`
	Rolls      []dice.DiceRoll `json:"rolls,omitempty" yaml:"rolls,omitempty"`

	result dice.Result
}

func newRollReport(expr dice.Expression, result dice.Result, individual bool) rollReport {
	r := rollReport{
		Expression: expr.String(),
		Total:      result.Total,
		result:     result,
	}
	if result.Kind == dice.ResultTest {
		target, passed := result.Target, result.Passed
		r.Comparison = result.Op.Symbol()
		r.Target = &target
		r.Passed = &passed
	}
	if individual {
		r.Rolls = result.Rolls
	}
	return r
}

func writeReports(w io.Writer, format string, reports []rollReport) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		for _, r := range reports {
			if _, err := io.WriteString(w, formatText(r)); err != nil {
				return err
			}
		}
		return nil
	}
}

var (
	passColor    = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgRed, color.Bold)
	droppedColor = color.New(color.Faint)
)

// formatText renders one roll. Individual dice appear one term per line, in
// roll order, with dropped dice in parentheses:
//
//	4d6kh3: [3 6 (1) 4] = 13
//	13
func formatText(r rollReport) string {
	var sb strings.Builder
	for _, roll := range r.Rolls {
		sb.WriteString(roll.Notation)
		sb.WriteString(": [")
		for i, d := range roll.Dice {
			if i > 0 {
				sb.WriteByte(' ')
			}
			v := strconv.FormatUint(d.Value, 10)
			if d.Kept {
				sb.WriteString(v)
			} else {
				sb.WriteString(droppedColor.Sprint("(" + v + ")"))
			}
		}
		fmt.Fprintf(&sb, "] = %d\n", roll.Total)
	}

	sb.WriteString(r.result.Summary())
	if r.result.Kind == dice.ResultTest {
		outcome := failColor
		if r.result.Passed {
			outcome = passColor
		}
		sb.WriteString(": " + outcome.Sprint(r.result.Outcome()))
	}
	sb.WriteByte('\n')
	return sb.String()
}
