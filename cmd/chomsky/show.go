package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/chomsky/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <grammar file path>",
		Short:   "Print a grammar and the properties it has",
		Example: `  chomsky show grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	return writeGrammar(os.Stdout, g)
}

func writeGrammar(w io.Writer, g *grammar.Grammar) error {
	start := "-"
	if s, err := g.StartSymbol(); err == nil {
		start = s.String()
	}
	uselessSyms, err := grammar.HasUselessSymbols(g)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# Productions\n\n%v\n", g)
	fmt.Fprintf(w, "# Symbols\n\n")
	fmt.Fprintf(w, "start:         %v\n", start)
	fmt.Fprintf(w, "non-terminals: %v\n", symbolsString(g.NonTerminals()))
	fmt.Fprintf(w, "terminals:     %v\n", symbolsString(g.Terminals()))
	fmt.Fprintf(w, "\n# Properties\n\n")
	fmt.Fprintf(w, "context-free:        %v\n", g.IsCFG())
	fmt.Fprintf(w, "λ-productions:       %v\n", grammar.HasLambdaProductions(g))
	fmt.Fprintf(w, "unit productions:    %v\n", grammar.HasUnitProductions(g))
	fmt.Fprintf(w, "useless productions: %v\n", grammar.HasUselessProductions(g))
	fmt.Fprintf(w, "useless symbols:     %v\n", uselessSyms)
	fmt.Fprintf(w, "well-formed:         %v\n", grammar.IsWellFormed(g))
	fmt.Fprintf(w, "CNF:                 %v\n", grammar.IsCNF(g))
	return nil
}

func symbolsString(syms []grammar.Symbol) string {
	if len(syms) == 0 {
		return "-"
	}
	var s string
	for i, sym := range syms {
		if i > 0 {
			s += " "
		}
		s += sym.String()
	}
	return s
}
