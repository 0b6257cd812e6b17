package driver

import verr "github.com/nihei9/chomsky/error"

type CYKError struct {
	message string
}

func newCYKError(message string) *CYKError {
	return &CYKError{
		message: message,
	}
}

func (e *CYKError) Error() string {
	return e.message
}

var (
	cykErrNoStartSymbol      = newCYKError("the start symbol is not set")
	cykErrEmptyGrammar       = newCYKError("the grammar has no production")
	cykErrNotCNF             = newCYKError("the grammar is not in Chomsky normal form")
	cykErrUndeclaredTerminal = newCYKError("the word contains a symbol that is not a terminal of the grammar")
)

func newError(op string, cause error, detail string) *verr.Error {
	return &verr.Error{
		Op:     op,
		Cause:  cause,
		Detail: detail,
	}
}
