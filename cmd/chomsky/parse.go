package main

import (
	"fmt"
	"os"

	"github.com/nihei9/chomsky/driver"
	"github.com/nihei9/chomsky/driver/earley"
	"github.com/nihei9/chomsky/tester"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	table  *bool
	grid   *bool
	verify *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path> <word>...",
		Short: "Decide whether a grammar derives words",
		Example: `  chomsky parse grammar.txt aabb abab
  chomsky parse --table grammar.txt ""`,
		Args: cobra.MinimumNArgs(2),
		RunE: runParse,
	}
	parseFlags.table = cmd.Flags().Bool("table", false, "print the CYK table of each word")
	parseFlags.grid = cmd.Flags().Bool("grid", false, "print the CYK table of each word as a grid")
	parseFlags.verify = cmd.Flags().Bool("verify", false, "cross-check each result with an Earley parser working on the original grammar")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	cnf, _, err := tester.Normalize(g)
	if err != nil {
		return err
	}

	var rec *earley.Recognizer
	if *parseFlags.verify {
		rec, err = earley.NewRecognizer(g)
		if err != nil {
			return err
		}
	}

	for _, word := range args[1:] {
		derived, decidable, err := tester.Decide(g, cnf, word)
		if err != nil {
			return err
		}
		label := word
		if label == "" {
			label = "λ"
		}
		if derived {
			fmt.Fprintf(os.Stdout, "%v: accepted\n", label)
		} else {
			fmt.Fprintf(os.Stdout, "%v: rejected\n", label)
		}

		if *parseFlags.table && decidable {
			state, err := driver.CYKStateToString(cnf, word)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%v\n", state)
		}
		if *parseFlags.grid && decidable {
			err := driver.WriteCYKGrid(os.Stdout, cnf, word)
			if err != nil {
				return err
			}
		}

		if rec != nil {
			expected, err := rec.Derives(word)
			if err != nil {
				return err
			}
			if expected != derived {
				return fmt.Errorf("Verification failed: %v: CYK: %v, Earley: %v", label, derived, expected)
			}
		}
	}
	return nil
}
