package islgloss

import (
	"errors"
	"fmt"
)

// Word is a single annotated word as produced by the sentence annotator
type Word struct {
	Text  string `json:"text"`  // Surface form as it appears in the input
	Lemma string `json:"lemma"` // Dictionary base form
	UPOS  string `json:"upos"`  // Universal part-of-speech tag
}

// Sentence is one segmented unit of the input text
type Sentence struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
}

// Surfaces returns the surface text of every word in the sentence
func (s Sentence) Surfaces() []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.Text
	}
	return out
}

// SentenceGloss is the per-sentence breakdown of a translation
type SentenceGloss struct {
	Text      string   `json:"text"`
	Reordered []string `json:"reordered"` // Surface words in gloss order, punctuation included
	Fallback  bool     `json:"fallback"`  // Original order was kept because parsing failed
	Tokens    []string `json:"tokens"`    // Gloss tokens before assembly
}

// Universal POS tags the pipeline cares about
const (
	UPOSPunct = "PUNCT"
	UPOSPron  = "PRON"
	UPOSNoun  = "NOUN"
	UPOSPropn = "PROPN"
	UPOSVerb  = "VERB"
	UPOSAux   = "AUX"
)

// Phrase labels used by the reorderer
const (
	LabelRoot = "ROOT"
	LabelNP   = "NP"
	LabelVP   = "VP"
	LabelPRP  = "PRP"
)

var (
	// ErrNoAnnotator is returned when a translation is requested without an annotator
	ErrNoAnnotator = errors.New("no sentence annotator configured")

	// ErrServiceNotReady is returned when the NLP service has not been started
	ErrServiceNotReady = errors.New("service not ready")

	// ErrMalformedTree is wrapped by every bracket parsing failure
	ErrMalformedTree = errors.New("malformed parse tree")
)

// ServiceError represents an error returned by the NLP service
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ParseError reports a constituency parse that could not be used for reordering
type ParseError struct {
	Sentence string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Sentence, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
