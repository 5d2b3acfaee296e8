package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// DocumentState is the live document for one dictation session.
type DocumentState struct {
	// op serializes utterance pipelines on this session: it is held from
	// the base document read until Replace, so two connections dictating
	// on the same session can never interleave mutations.
	op sync.Mutex

	mu       sync.RWMutex
	document string
	seq      int64
}

// BeginUtterance takes exclusive ownership of the session's pipeline.
// It must be paired with EndUtterance.
func (s *DocumentState) BeginUtterance() {
	s.op.Lock()
}

func (s *DocumentState) EndUtterance() {
	s.op.Unlock()
}

func (s *DocumentState) Document() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document
}

func (s *DocumentState) Seq() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Replace swaps the whole document and returns the new sequence number.
func (s *DocumentState) Replace(document string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = document
	s.seq++
	return s.seq
}

type DocumentRepository struct {
	cache *cache.Cache
}

func NewDocumentRepository() *DocumentRepository {
	// Sessions idle for an hour are evicted; the durable copy lives in
	// the dictation_sessions table.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &DocumentRepository{
		cache: c,
	}
}

// GetOrCreate returns the live state for a session, seeding it with the
// given document when the session is not resident.
func (r *DocumentRepository) GetOrCreate(sessionID string, document string, seq int64) *DocumentState {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*DocumentState)
	}
	state := &DocumentState{document: document, seq: seq}
	r.cache.Set(sessionID, state, cache.DefaultExpiration)
	return state
}

func (r *DocumentRepository) Get(sessionID string) (*DocumentState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*DocumentState), true
	}
	return nil, false
}

func (r *DocumentRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
