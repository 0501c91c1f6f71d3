package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"mpint/internal/mpi"
)

var (
	labelColor = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow, color.Bold)
	passColor  = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed, color.Bold)
)

// normalizeOperand folds compatibility forms (full-width digits, for
// example) to ASCII and strips surrounding space and digit separators.
func normalizeOperand(s string) string {
	s = norm.NFKC.String(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "_", "")
}

func parseOperand(s string) (*mpi.Int, error) {
	return mpi.Parse(normalizeOperand(s))
}

func parseOperands(args []string) ([]*mpi.Int, error) {
	out := make([]*mpi.Int, len(args))
	for i, arg := range args {
		x, err := parseOperand(arg)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i+1, err)
		}
		out[i] = x
	}
	return out, nil
}

// parseCount reads a non-negative count such as a shift or a bit index.
func parseCount(what, s string) (uint, error) {
	n, err := strconv.Atoi(normalizeOperand(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	u, err := safecast.Conv[uint](n)
	if err != nil {
		return 0, fmt.Errorf("%s %d: must not be negative", what, n)
	}
	return u, nil
}

// result is one labelled output value. Formatting is deferred so it can
// be timed as its own phase.
type result struct {
	label string
	value *mpi.Int
	text  string
}

func (r result) render() string {
	if r.value != nil {
		return r.value.String()
	}
	return r.text
}

// printResults prints a single unlabelled value bare and otherwise one
// aligned "label = value" line per result.
func printResults(w io.Writer, labels, texts []string) {
	if len(texts) == 1 && labels[0] == "" {
		fmt.Fprintln(w, texts[0])
		return
	}
	width := 0
	for _, l := range labels {
		width = max(width, runewidth.StringWidth(l))
	}
	for i, text := range texts {
		fmt.Fprintf(w, "%s = %s\n", labelColor.Sprint(runewidth.FillRight(labels[i], width)), text)
	}
}
