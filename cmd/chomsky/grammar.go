package main

import (
	"errors"
	"fmt"
	"os"

	verr "github.com/nihei9/chomsky/error"
	"github.com/nihei9/chomsky/grammar"
	"github.com/nihei9/chomsky/spec"
)

func readGrammar(path string) (grm *grammar.Grammar, retErr error) {
	defer func() {
		if retErr == nil {
			return
		}
		var specErr *verr.SpecError
		if errors.As(retErr, &specErr) {
			specErr.FilePath = path
			specErr.SourceName = path
		}
		if specErrs, ok := retErr.(verr.SpecErrors); ok {
			for _, err := range specErrs {
				err.FilePath = path
				err.SourceName = path
			}
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build()
}
