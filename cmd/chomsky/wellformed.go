package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nihei9/chomsky/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "wellformed <grammar file path>",
		Short:   "Transform a grammar into a well-formed grammar",
		Example: `  chomsky wellformed grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runWellFormed,
	}
	rootCmd.AddCommand(cmd)
}

func runWellFormed(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	wf, report, err := grammar.TransformToWellFormedGrammar(g)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%v", wf)
	writeReport(report)
	return nil
}

func writeReport(report *grammar.WellFormedReport) {
	fmt.Fprintf(os.Stderr, "useless productions: %v\n", listString(report.UselessProductions))
	fmt.Fprintf(os.Stderr, "λ-treated:           %v\n", symbolsString(report.LambdaTreated))
	fmt.Fprintf(os.Stderr, "unit productions:    %v\n", listString(report.UnitProductions))
	fmt.Fprintf(os.Stderr, "useless symbols:     %v\n", symbolsString(report.UselessSymbols))
}

func listString(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, " ")
}
