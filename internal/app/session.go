// Package app owns the start page state: the shortcut collection, the
// selected search engine and the store both are persisted to.
package app

import (
	"io"
	"log"
	"sync"

	"github.com/theysh/startpage/internal/engine"
	"github.com/theysh/startpage/internal/model"
	"github.com/theysh/startpage/internal/storage"
)

// Session is the application-state container. Every mutating method applies
// a pure command to the collection and then saves the result explicitly.
//
// Save failures are logged and otherwise ignored; in-memory state stays
// authoritative for the rest of the session.
type Session struct {
	mu     sync.RWMutex
	store  storage.Store
	logger *log.Logger

	links  model.Collection
	engine string // raw persisted identifier
}

// SessionParams holds parameters for creating a new Session.
type SessionParams struct {
	Store  storage.Store
	Logger *log.Logger // optional, discards output if nil
}

// NewSession creates an uninitialized Session. Call Initialize before use.
func NewSession(params SessionParams) *Session {
	logger := params.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		store:  params.Store,
		logger: logger,
		links:  model.Collection{},
	}
}

// Open creates a Session and initializes it from store.
func Open(store storage.Store, logger *log.Logger) *Session {
	s := NewSession(SessionParams{Store: store, Logger: logger})
	s.Initialize()
	return s
}

// Initialize loads both persisted records. Missing or malformed link data
// yields the seed list; an unreadable engine selection yields the default.
func (s *Session) Initialize() {
	links, err := storage.LoadLinks(s.store)
	if err != nil {
		s.logger.Printf("loading shortcuts, using seed list: %v", err)
	}

	id, err := storage.LoadEngine(s.store)
	if err != nil {
		s.logger.Printf("loading search engine, using default: %v", err)
	}

	s.mu.Lock()
	s.links = links
	s.engine = id
	s.mu.Unlock()
}

// Links returns a copy of the current collection.
func (s *Session) Links() model.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.links.Clone()
}

// Link returns the shortcut with the given ID, or nil.
func (s *Session) Link(id string) *model.Shortcut {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.links.Get(id)
}

// AddLink appends a shortcut and persists the collection.
func (s *Session) AddLink(link model.Shortcut) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLinks(s.links.Add(link))
}

// UpdateLink replaces the shortcut with the same ID and persists the
// collection. Returns false, without saving, when no shortcut matches.
func (s *Session) UpdateLink(link model.Shortcut) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, found := s.links.Update(link)
	if !found {
		return false
	}
	s.commitLinks(links)
	return true
}

// RemoveLink deletes a shortcut and persists the collection.
// Returns false, without saving, when the ID is absent.
func (s *Session) RemoveLink(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, found := s.links.Remove(id)
	if !found {
		return false
	}
	s.commitLinks(links)
	return true
}

// ReorderLink moves the shortcut at from to to and persists the collection.
// Out-of-range indices return model.ErrIndexOutOfRange and change nothing.
func (s *Session) ReorderLink(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.links.Reorder(from, to)
	if err != nil {
		return err
	}
	s.commitLinks(links)
	return nil
}

// ImportLinks appends every shortcut whose URL is not already present.
// Returns how many were added and skipped.
func (s *Session) ImportLinks(links []model.Shortcut) (added, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.links
	for _, link := range links {
		if next.HasURL(link.URL) {
			skipped++
			continue
		}
		next = next.Add(link)
		added++
	}
	if added > 0 {
		s.commitLinks(next)
	}
	return added, skipped
}

// Engine returns the active engine config, falling back to the default for
// an absent or unrecognized selection.
func (s *Session) Engine() engine.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return engine.Resolve(s.engine)
}

// SelectEngine records id as the selection and persists it verbatim.
func (s *Session) SelectEngine(id engine.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine = string(id)
	if err := storage.SaveEngine(s.store, s.engine); err != nil {
		s.logger.Printf("saving search engine: %v", err)
	}
}

// CycleEngine selects the engine after the current one.
func (s *Session) CycleEngine() engine.Config {
	next := engine.Next(s.Engine().ID)
	s.SelectEngine(next)
	cfg, _ := engine.Lookup(next)
	return cfg
}

// SearchURL builds the navigation target for query on the active engine.
func (s *Session) SearchURL(query string) (string, error) {
	return s.Engine().SearchURL(query)
}

// commitLinks installs links as the current collection and saves it.
// Caller must hold s.mu.
func (s *Session) commitLinks(links model.Collection) {
	s.links = links
	if err := storage.SaveLinks(s.store, links); err != nil {
		s.logger.Printf("saving shortcuts: %v", err)
	}
}
