package islgloss

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

var (
	//go:embed words.txt
	defaultWords string

	defaultVocab     *Vocabulary
	defaultVocabOnce sync.Once
)

// Vocabulary is the set of words that have a whole-word sign.
// It is read-only once loaded and safe for concurrent use.
type Vocabulary struct {
	words map[string]struct{}
}

// NewVocabulary builds a vocabulary from a list of words
func NewVocabulary(words ...string) *Vocabulary {
	v := &Vocabulary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			v.words[w] = struct{}{}
		}
	}
	return v
}

// LoadVocabulary reads one word per line. Blank lines and lines starting
// with '#' are ignored.
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	v := &Vocabulary{words: make(map[string]struct{})}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v.words[strings.ToLower(line)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	return v, nil
}

// LoadVocabularyFile reads a vocabulary from a word list on disk
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()
	return LoadVocabulary(f)
}

// DefaultVocabulary returns the embedded word list
func DefaultVocabulary() *Vocabulary {
	defaultVocabOnce.Do(func() {
		v, err := LoadVocabulary(strings.NewReader(defaultWords))
		if err != nil {
			// reading from a string cannot fail
			panic(err)
		}
		defaultVocab = v
		Logger.Debug().Int("words", v.Len()).Msg("Default vocabulary loaded")
	})
	return defaultVocab
}

// Len returns the number of words
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Contains reports whether word has a sign, ignoring case
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.words[strings.ToLower(word)]
	return ok
}

// Words returns the vocabulary sorted alphabetically
func (v *Vocabulary) Words() []string {
	out := make([]string, 0, len(v.words))
	for w := range v.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Gloss maps a token to its gloss tokens: the lowercase word when it is in
// the vocabulary, its fingerspelled letters otherwise.
func (v *Vocabulary) Gloss(token string) []string {
	if v.Contains(token) {
		return []string{strings.ToLower(token)}
	}
	return Fingerspell(token)
}

// GlossAll applies Gloss to every token and concatenates the results
func (v *Vocabulary) GlossAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, v.Gloss(t)...)
	}
	return out
}

// Fingerspell splits a word into one uppercase token per character
func Fingerspell(word string) []string {
	out := make([]string, 0, len(word))
	for _, r := range word {
		out = append(out, strings.ToUpper(string(r)))
	}
	return out
}
