package grammar

import verr "github.com/nihei9/chomsky/error"

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrInvalidTerminal     = newSemanticError("a terminal must be a lower-case letter other than the lambda symbol")
	semErrInvalidNonTerminal  = newSemanticError("a non-terminal must be an upper-case letter")
	semErrDuplicateTerminal   = newSemanticError("duplicate terminal")
	semErrDuplicateNonTerm    = newSemanticError("duplicate non-terminal")
	semErrUndefinedSym        = newSemanticError("undefined symbol")
	semErrUndefinedNonTerm    = newSemanticError("undefined non-terminal")
	semErrUndefinedTerminal   = newSemanticError("undefined terminal")
	semErrNoStartSymbol       = newSemanticError("the start symbol is not set")
	semErrEmptyRHS            = newSemanticError("a right-hand side must be the lambda symbol or a sequence of symbols")
	semErrLambdaInSequence    = newSemanticError("the lambda symbol cannot be combined with other symbols")
	semErrDuplicateProduction = newSemanticError("duplicate production")
	semErrUndefinedProduction = newSemanticError("undefined production")
	semErrNotCNF              = newSemanticError("the production is not in Chomsky normal form")
	semErrNotWellFormed       = newSemanticError("the grammar is not well-formed")
	semErrNoFreshSymbol       = newSemanticError("no unused non-terminal is left")
	semErrStaleRevision       = newSemanticError("the grammar was changed by another writer")
)

func newError(op string, cause error, detail string) *verr.Error {
	return &verr.Error{
		Op:     op,
		Cause:  cause,
		Detail: detail,
	}
}
