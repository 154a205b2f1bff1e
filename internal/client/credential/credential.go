// Package credential holds the bearer token shared by the API gateway and
// the session store.
//
// New hands out two capabilities over one token cell: a Source that can
// only read, given to whatever issues requests, and a Writer that can set
// and clear, given to the session store alone.
package credential

import "sync"

type cell struct {
	mu    sync.RWMutex
	token string
}

// Source reads the current token.
type Source struct {
	c *cell
}

// Writer mutates the token. Changes are visible to the paired Source
// as soon as the call returns.
type Writer struct {
	c *cell
}

// New returns a paired Source and Writer with no token set.
func New() (*Source, *Writer) {
	c := &cell{}
	return &Source{c: c}, &Writer{c: c}
}

// Token returns the current token and whether one is set.
func (s *Source) Token() (string, bool) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return s.c.token, s.c.token != ""
}

func (w *Writer) Set(token string) {
	w.c.mu.Lock()
	w.c.token = token
	w.c.mu.Unlock()
}

func (w *Writer) Clear() {
	w.Set("")
}
