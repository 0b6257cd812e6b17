package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/chomsky/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  chomsky test grammar.txt test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}

	cs := tester.ListTestCases(args[1])
	unreadable := 0
	for _, c := range cs {
		if c.Error != nil {
			fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
			unreadable++
		}
	}
	if unreadable > 0 {
		return fmt.Errorf("Cannot run test: %v unreadable test cases", unreadable)
	}

	t := &tester.Tester{
		Grammar: g,
		Cases:   cs,
	}
	var passed, failed int
	for _, r := range t.Run() {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			failed++
		} else {
			passed++
		}
	}
	fmt.Fprintf(os.Stdout, "%v passed, %v failed\n", passed, failed)
	if failed > 0 {
		return errors.New("Test failed")
	}
	return nil
}
