package redis

import (
	"fmt"

	"github.com/mcoot/wordsearch-go/internal/model"
)

func (s *Storage) prefix() string {
	if s.cfg.KeyPrefix == "" {
		return DefaultConfig().KeyPrefix
	}
	return s.cfg.KeyPrefix
}

// matchKey holds one match as a JSON blob
func (s *Storage) matchKey(code model.MatchCode) string {
	return fmt.Sprintf("%s:match:%s", s.prefix(), code)
}

// matchIndexKey is the SET of known match codes
func (s *Storage) matchIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", s.prefix())
}
