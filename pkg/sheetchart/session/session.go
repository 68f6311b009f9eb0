// Package session ties a loaded dataset, the selection manager and the
// renderer together.
package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/projector"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/render"
	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/selection"
)

// Load is a pending dataset load. Only the most recently started load may
// install its dataset; earlier ones are discarded when they complete.
type Load struct {
	s   *Session
	gen uint64
}

// Session holds the current dataset and selection.
type Session struct {
	mu       sync.RWMutex
	dataset  *models.Dataset
	sel      *selection.Manager
	renderer *render.Renderer
	log      *zap.Logger

	// next is the last generation handed out, latest the one allowed to
	// install and installed the one whose dataset is current.
	next      uint64
	latest    uint64
	installed uint64
	pending   map[uint64]bool
}

// New returns an empty session drawing with renderer.
func New(renderer *render.Renderer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		pending:  make(map[uint64]bool),
		sel:      selection.NewManager(),
		renderer: renderer,
		log:      log,
	}
}

// Selection returns the selection manager.
func (s *Session) Selection() *selection.Manager {
	return s.sel
}

// Dataset returns the current dataset, or nil before the first load.
func (s *Session) Dataset() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// BeginLoad starts a load, superseding any load still in flight.
func (s *Session) BeginLoad() *Load {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.latest = s.next
	s.pending[s.next] = true
	return &Load{s: s, gen: s.next}
}

// Complete installs a copy of ds if l is still the latest load and resets
// the selection to the dataset's columns. It reports whether ds was
// installed.
func (l *Load) Complete(ds *models.Dataset) bool {
	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, l.gen)
	if l.gen != s.latest {
		s.log.Debug("discarding superseded dataset", zap.Uint64("load", l.gen), zap.Uint64("latest", s.latest))
		return false
	}
	own, err := ds.Clone()
	if err != nil {
		s.log.Error("dataset copy failed", zap.String("book", ds.BookName), zap.Error(err))
		s.fallBack()
		return false
	}
	s.dataset = own
	s.installed = l.gen
	s.sel.Reset(own.Columns)
	s.log.Info("dataset loaded",
		zap.String("book", own.BookName),
		zap.String("sheet", own.SheetName),
		zap.Int("rows", own.Len()),
		zap.Strings("columns", own.Columns))
	return true
}

// Abandon gives up a load that failed. If l was the latest load, the newest
// load still in flight may install again.
func (l *Load) Abandon() {
	s := l.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending[l.gen] {
		return
	}
	delete(s.pending, l.gen)
	if l.gen == s.latest {
		s.fallBack()
	}
}

// fallBack hands the latest slot to the newest pending load started after
// the current dataset's load.
func (s *Session) fallBack() {
	s.latest = s.installed
	for gen := range s.pending {
		if gen > s.latest {
			s.latest = gen
		}
	}
}

// Replace loads ds immediately.
func (s *Session) Replace(ds *models.Dataset) {
	s.BeginLoad().Complete(ds)
}

// Series projects the current dataset with the effective selection.
func (s *Session) Series() (models.Series, bool) {
	s.mu.RLock()
	ds := s.dataset
	sel := s.sel.EffectiveSelection()
	s.mu.RUnlock()
	return projector.Project(ds, sel)
}

// Summary returns the dataset information for the committed selection.
func (s *Session) Summary() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Summarize(s.dataset, s.sel.Committed())
}

// Surface renders the current series, or the placeholder when there is none.
func (s *Session) Surface() (*render.Surface, error) {
	series, ok := s.Series()
	if !ok {
		return s.renderer.Placeholder()
	}
	return s.renderer.Render(series)
}
