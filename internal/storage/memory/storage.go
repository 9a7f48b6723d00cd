package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Matches are copied on the way in and out.
type Storage struct {
	mu sync.RWMutex

	matches map[model.MatchCode]*model.Match
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		matches: make(map[model.MatchCode]*model.Match),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.Code] = match.Clone()
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, code model.MatchCode) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[code]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return match.Clone(), nil
}

func (s *Storage) DeleteMatch(ctx context.Context, code model.MatchCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, code)
	return nil
}

func (s *Storage) MatchExists(ctx context.Context, code model.MatchCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.matches[code]
	return ok, nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]model.MatchCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]model.MatchCode, 0, len(s.matches))
	for code := range s.matches {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes, nil
}
