package main

import (
	"fmt"
	"os"

	"github.com/nihei9/chomsky/tester"
	"github.com/spf13/cobra"
)

var cnfFlags = struct {
	report *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "cnf <grammar file path>",
		Short:   "Transform a grammar into Chomsky normal form",
		Example: `  chomsky cnf grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCNF,
	}
	cnfFlags.report = cmd.Flags().Bool("report", false, "print what the well-formed transformation removed to stderr")
	rootCmd.AddCommand(cmd)
}

func runCNF(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	cnf, report, err := tester.Normalize(g)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%v", cnf)
	if *cnfFlags.report && report != nil {
		writeReport(report)
	}
	return nil
}
