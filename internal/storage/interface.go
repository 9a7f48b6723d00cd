package storage

import (
	"context"

	"github.com/mcoot/wordsearch-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, code model.MatchCode) (*model.Match, error)
	DeleteMatch(ctx context.Context, code model.MatchCode) error
	MatchExists(ctx context.Context, code model.MatchCode) (bool, error)
	ListMatches(ctx context.Context) ([]model.MatchCode, error)
}
