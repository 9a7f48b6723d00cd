package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
)

// Load reads one word per line. Blank lines and lines starting with # are
// skipped; surrounding whitespace is trimmed.
func Load(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

// LoadFile loads a word list from a file
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Load(file)
}

// Pick returns n words chosen at random without replacement, in draw order.
// All words are returned (shuffled) when n >= len(words).
func Pick(words []string, n int, rnd random.Random) []string {
	pool := append([]string(nil), words...)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + rnd.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
