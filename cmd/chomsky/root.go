package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "chomsky",
	Short: "Normalize context-free grammars and decide membership",
	Long: `chomsky provides the following features:
- Transforms a grammar into a well-formed grammar and into Chomsky normal form.
- Decides whether a grammar derives a word using the CYK algorithm.
- Tests a grammar against files listing accepted and rejected words.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUpTracing,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "error", "trace level (error|info|debug)")
}

func setUpTracing(cmd *cobra.Command, args []string) error {
	var level tracing.TraceLevel
	switch *rootFlags.trace {
	case "error":
		level = tracing.LevelError
	case "info":
		level = tracing.LevelInfo
	case "debug":
		level = tracing.LevelDebug
	default:
		return fmt.Errorf("Invalid trace level: %v", *rootFlags.trace)
	}
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(level)
	gtrace.SyntaxTracer = gologadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(level)
	return nil
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
