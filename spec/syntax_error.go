package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// syntax errors
	synErrInvalidToken      = newSyntaxError("invalid token")
	synErrNoProduction      = newSyntaxError("a grammar must have at least one production")
	synErrNoProductionName  = newSyntaxError("a production must start with a non-terminal")
	synErrNoDerives         = newSyntaxError("::= must follow the left-hand side")
	synErrEmptyAlternative  = newSyntaxError("an alternative needs at least one symbol; write l for the empty string")
	synErrNoDelimiter       = newSyntaxError("a production must be followed by a comma, a newline or the end of input")
	synErrStartNoSymbol     = newSyntaxError("%start needs a non-terminal")
	synErrStartNoNewline    = newSyntaxError("%start must be followed by a newline")
	synErrDuplicateStartDir = newSyntaxError("%start can appear only once")
)
