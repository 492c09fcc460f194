package islgloss

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxPhraseWords is the longest phrase looked up as a single sign
const MaxPhraseWords = 4

// SignClip is a rendered sign for one or more consecutive gloss tokens
type SignClip struct {
	Phrase string `json:"phrase"`
	Path   string `json:"path"`
	Start  int    `json:"start"` // 1-based position of the first token covered
	Words  int    `json:"words"`
}

// SignResolution is the result of mapping a gloss sequence to clips
type SignResolution struct {
	Clips   []SignClip `json:"clips"`
	Missing []string   `json:"missing,omitempty"`
}

// SignDictionary maps lowercase phrases to the clip that renders them
type SignDictionary struct {
	phrases map[string]string
}

// NewSignDictionary builds a dictionary from phrase → clip path pairs
func NewSignDictionary(entries map[string]string) *SignDictionary {
	d := &SignDictionary{phrases: make(map[string]string, len(entries))}
	for phrase, path := range entries {
		d.phrases[normalizePhrase(phrase)] = path
	}
	return d
}

// LoadSignDictionary reads a JSON object of phrase → clip path
func LoadSignDictionary(r io.Reader) (*SignDictionary, error) {
	var entries map[string]string
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode sign dictionary: %w", err)
	}
	return NewSignDictionary(entries), nil
}

// LoadSignDictionaryFile reads a sign dictionary from disk
func LoadSignDictionaryFile(path string) (*SignDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sign dictionary: %w", err)
	}
	defer f.Close()
	return LoadSignDictionary(f)
}

// Len returns the number of phrases
func (d *SignDictionary) Len() int {
	return len(d.phrases)
}

// Resolve maps gloss tokens to clips, preferring the longest phrase of up
// to MaxPhraseWords tokens at each position. Tokens without a clip are
// skipped and listed in Missing.
func (d *SignDictionary) Resolve(tokens []string) SignResolution {
	var res SignResolution
	for i := 0; i < len(tokens); {
		n := min(MaxPhraseWords, len(tokens)-i)
		matched := false
		for ; n > 0; n-- {
			phrase := normalizePhrase(strings.Join(tokens[i:i+n], " "))
			if path, ok := d.phrases[phrase]; ok {
				res.Clips = append(res.Clips, SignClip{Phrase: phrase, Path: path, Start: i + 1, Words: n})
				i += n
				matched = true
				break
			}
		}
		if !matched {
			res.Missing = append(res.Missing, tokens[i])
			i++
		}
	}
	return res
}

func normalizePhrase(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
