package islgloss

import (
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"
	"github.com/rs/zerolog"
)

// functionWords are the auxiliary and modal verbs that have no sign of
// their own. Articles, prepositions and conjunctions are kept.
var functionWords = map[string]struct{}{
	"am": {}, "are": {}, "is": {}, "was": {}, "were": {},
	"be": {}, "being": {}, "been": {},
	"have": {}, "has": {}, "had": {},
	"does": {}, "did": {},
	"could": {}, "should": {}, "would": {},
	"can": {}, "shall": {}, "will": {},
	"may": {}, "might": {}, "must": {}, "let": {},
}

// IsFunctionWord reports whether word is dropped by RemoveFunctionWords
func IsFunctionWord(word string) bool {
	_, ok := functionWords[strings.ToLower(word)]
	return ok
}

// RemovePunctuation drops every word tagged as punctuation
func RemovePunctuation(words []Word) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if w.UPOS != UPOSPunct {
			out = append(out, w)
		}
	}
	return out
}

// RemoveFunctionWords drops auxiliary and modal verbs
func RemoveFunctionWords(words []Word) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if !IsFunctionWord(w.Text) {
			out = append(out, w)
		}
	}
	return out
}

// ReduceToBase replaces each word longer than one character by its lemma.
// Single characters are already atomic and are kept as they are.
// When a word has no lemma, its Snowball stem is used only if vocab holds
// it; otherwise the lowercased word is kept. A nil vocab means the
// embedded vocabulary.
func ReduceToBase(words []Word, vocab *Vocabulary) []string {
	return reduceToBase(words, vocab, Logger)
}

func reduceToBase(words []Word, vocab *Vocabulary, log zerolog.Logger) []string {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	out := make([]string, len(words))
	for i, w := range words {
		if utf8.RuneCountInString(w.Text) > 1 {
			out[i] = baseForm(w, vocab, log)
		} else {
			out[i] = w.Text
		}
	}
	return out
}

func baseForm(w Word, vocab *Vocabulary, log zerolog.Logger) string {
	if w.Lemma != "" {
		return w.Lemma
	}
	lower := strings.ToLower(w.Text)
	stem, err := snowball.Stem(lower, "english", true)
	if err != nil || stem == "" || !vocab.Contains(stem) {
		log.Trace().Err(err).Str("word", w.Text).Str("stem", stem).Msg("No lemma, keeping surface form")
		return lower
	}
	return stem
}
