package islgloss

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Annotator segments text into sentences of annotated words
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Sentence, error)
}

// Parser returns the constituency parse of one tokenized sentence
type Parser interface {
	Parse(ctx context.Context, words []string) (*Tree, error)
}

// Translator turns English text into ISL gloss tokens.
// Its fields are set once by NewTranslator and only read afterwards, so a
// single Translator can serve concurrent requests.
type Translator struct {
	annotator Annotator
	parser    Parser
	vocab     *Vocabulary
	logger    zerolog.Logger
}

// TranslatorOption defines function signature for options to configure Translator
type TranslatorOption func(*Translator)

// WithVocabulary replaces the embedded vocabulary
func WithVocabulary(v *Vocabulary) TranslatorOption {
	return func(t *Translator) {
		t.vocab = v
	}
}

// WithLogger sets the logger used for per-request logging
func WithLogger(l zerolog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = l
	}
}

// NewTranslator creates a translator over the given collaborators
func NewTranslator(annotator Annotator, parser Parser, opts ...TranslatorOption) *Translator {
	t := &Translator{
		annotator: annotator,
		parser:    parser,
		logger:    Logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.vocab == nil {
		t.vocab = DefaultVocabulary()
	}
	return t
}

// Vocabulary returns the vocabulary used for validation
func (t *Translator) Vocabulary() *Vocabulary {
	return t.vocab
}

// Translate converts text to a 1-based mapping of gloss tokens.
// Empty text yields an empty mapping.
func (t *Translator) Translate(ctx context.Context, text string) (Mapping, error) {
	glosses, err := t.TranslateSentences(ctx, text)
	if err != nil {
		return nil, err
	}
	tokens := make([][]string, len(glosses))
	for i, g := range glosses {
		tokens[i] = g.Tokens
	}
	return Assemble(tokens), nil
}

// TranslateSentences runs the pipeline and returns the per-sentence breakdown
func (t *Translator) TranslateSentences(ctx context.Context, text string) ([]SentenceGloss, error) {
	text = cleanInput(text)
	if text == "" {
		return nil, nil
	}
	if t.annotator == nil {
		return nil, ErrNoAnnotator
	}

	log := t.logger.With().Str("request_id", uuid.NewString()).Logger()
	log.Debug().Int("chars", len(text)).Msg("Translating")

	sentences, err := t.annotator.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotation failed: %w", err)
	}

	out := make([]SentenceGloss, 0, len(sentences))
	for i, s := range sentences {
		words, fallback := t.reorderSentence(ctx, s, log)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if fallback {
			log.Warn().Int("sentence", i).Str("text", s.Text).Msg("Keeping original word order")
		}

		g := SentenceGloss{
			Text:      s.Text,
			Reordered: Sentence{Words: words}.Surfaces(),
			Fallback:  fallback,
		}
		words = RemovePunctuation(words)
		words = RemoveFunctionWords(words)
		g.Tokens = t.vocab.GlossAll(reduceToBase(words, t.vocab, log))

		log.Trace().Int("sentence", i).Strs("reordered", g.Reordered).Strs("tokens", g.Tokens).Msg("Sentence done")
		out = append(out, g)
	}
	return out, nil
}

// reorderSentence puts the words of s in gloss order. The original order
// is returned, with fallback set, when the sentence cannot be parsed.
func (t *Translator) reorderSentence(ctx context.Context, s Sentence, log zerolog.Logger) (words []Word, fallback bool) {
	surfaces := s.Surfaces()
	if allSingleChars(surfaces) {
		return s.Words, false
	}
	if t.parser == nil {
		return s.Words, true
	}

	tree, err := t.parser.Parse(ctx, surfaces)
	if err == nil {
		err = checkLeaves(tree, len(surfaces))
	}
	if err != nil {
		log.Debug().Err(&ParseError{Sentence: s.Text, Err: err}).Msg("Parse unusable")
		return s.Words, true
	}

	order := Reorder(surfaces, tree)
	if !IsPermutation(order, len(surfaces)) {
		return s.Words, true
	}
	words = make([]Word, len(order))
	for i, j := range order {
		words[i] = s.Words[j]
	}
	return words, false
}

func checkLeaves(tree *Tree, n int) error {
	if tree == nil {
		return fmt.Errorf("%w: no tree", ErrMalformedTree)
	}
	leaves := tree.Leaves()
	if len(leaves) != n {
		return fmt.Errorf("%w: %d leaves for %d words", ErrMalformedTree, len(leaves), n)
	}
	for i, l := range leaves {
		if l.Word != i {
			return fmt.Errorf("%w: leaf %d refers to word %d", ErrMalformedTree, i, l.Word)
		}
	}
	return nil
}

// cleanInput trims text and collapses line breaks, tabs and runs of
// spaces into single spaces
func cleanInput(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
