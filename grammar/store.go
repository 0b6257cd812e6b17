package grammar

import "sync"

// Store owns one grammar and serializes access to it. Readers get a snapshot together with its
// revision; writers swap in a new grammar only when the revision is still current.
type Store struct {
	mu  sync.Mutex
	g   *Grammar
	rev uint64
}

func NewStore(g *Grammar) *Store {
	if g == nil {
		g = NewGrammar()
	}
	return &Store{
		g: g.Clone(),
	}
}

// Snapshot returns a private copy of the current grammar and its revision.
func (s *Store) Snapshot() (*Grammar, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Clone(), s.rev
}

// CompareAndSwap replaces the grammar when rev is the current revision.
func (s *Store) CompareAndSwap(rev uint64, g *Grammar) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rev != s.rev {
		return false
	}
	s.g = g.Clone()
	s.rev++
	return true
}

// Update applies an authoring function to a copy of the grammar. The copy is stored only when the
// function succeeds, so a failed mutation leaves the grammar untouched.
func (s *Store) Update(f func(g *Grammar) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.g.Clone()
	if err := f(g); err != nil {
		return err
	}
	s.g = g
	s.rev++
	return nil
}

// Apply runs a transformation stage on a snapshot and stores its output.
func (s *Store) Apply(stage func(g *Grammar) (*Grammar, error)) error {
	g, rev := s.Snapshot()
	out, err := stage(g)
	if err != nil {
		return err
	}
	if !s.CompareAndSwap(rev, out) {
		return newError("apply", semErrStaleRevision, "")
	}
	return nil
}
