package tester

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/chomsky/driver"
	"github.com/nihei9/chomsky/grammar"
	tspec "github.com/nihei9/chomsky/spec/test"
)

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []*tspec.WordDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		var diffLines []string
		for _, diff := range r.Diffs {
			diffLines = append(diffLines, diff.Message)
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

// ListTestCases reads a test-case file, or every test-case file under a directory. A file that cannot be
// read or parsed yields a case carrying the error.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		// Hidden files and directories are not test cases.
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

// Tester checks the words of test cases against a grammar. The grammar doesn't need to be in CNF; it is
// normalized once before the first case runs.
type Tester struct {
	Grammar *grammar.Grammar
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	cnf, _, err := Normalize(t.Grammar)

	var rs []*TestResult
	for _, c := range t.Cases {
		if err != nil {
			rs = append(rs, &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			})
			continue
		}
		rs = append(rs, runTest(t.Grammar, cnf, c))
	}
	return rs
}

// Normalize returns the grammar itself when it is in CNF already, otherwise its well-formed CNF equivalent
// together with what the well-formed transformation removed.
func Normalize(g *grammar.Grammar) (*grammar.Grammar, *grammar.WellFormedReport, error) {
	if grammar.IsCNF(g) {
		return g, nil, nil
	}
	wf, report, err := grammar.TransformToWellFormedGrammar(g)
	if err != nil {
		return nil, nil, err
	}
	cnf, err := grammar.TransformIntoCNF(wf)
	if err != nil {
		return nil, nil, err
	}
	return cnf, report, nil
}

func runTest(g, cnf *grammar.Grammar, c *TestCaseWithMetadata) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	var diffs []*tspec.WordDiff
	for _, wc := range c.TestCase.Words {
		accepted, _, err := Decide(g, cnf, wc.Word)
		if err != nil {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("line %v: %w", wc.Line, err),
			}
		}
		if diff := tspec.DiffWord(wc, accepted); diff != nil {
			diffs = append(diffs, diff)
		}
	}
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("membership mismatch"),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

// Decide runs CYK for a word on cnf, the normalized form of g. A symbol that is not a terminal of g is an
// error. The normalization can remove terminals or every production; such a word is rejected without a
// CYK table, and decidable is false.
func Decide(g, cnf *grammar.Grammar, word string) (derived bool, decidable bool, err error) {
	declared := symbolsOf(g.Terminals())
	kept := symbolsOf(cnf.Terminals())
	for _, r := range word {
		sym := grammar.Symbol(r)
		if _, ok := declared[sym]; !ok {
			return false, false, fmt.Errorf("'%v' is not a terminal of the grammar", sym)
		}
		if _, ok := kept[sym]; !ok {
			return false, false, nil
		}
	}
	// The language is empty.
	if cnf.IsEmpty() {
		return false, false, nil
	}
	derived, err = driver.IsDerivedUsingCYK(cnf, word)
	if err != nil {
		return false, false, err
	}
	return derived, true, nil
}

func symbolsOf(syms []grammar.Symbol) map[grammar.Symbol]struct{} {
	m := make(map[grammar.Symbol]struct{}, len(syms))
	for _, sym := range syms {
		m[sym] = struct{}{}
	}
	return m
}
