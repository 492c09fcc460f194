package islgloss

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mapping is the translation result: gloss tokens keyed by their 1-based
// position across the whole input.
type Mapping map[int]string

// Assemble flattens per-sentence gloss tokens into a single Mapping.
// Single-character tokens are uppercased.
func Assemble(sentences [][]string) Mapping {
	m := make(Mapping)
	i := 1
	for _, tokens := range sentences {
		for _, tok := range tokens {
			if utf8.RuneCountInString(tok) == 1 {
				tok = strings.ToUpper(tok)
			}
			m[i] = tok
			i++
		}
	}
	return m
}

// Tokens returns the gloss tokens in order
func (m Mapping) Tokens() []string {
	out := make([]string, len(m))
	for i := range out {
		out[i] = m[i+1]
	}
	return out
}

// String joins the tokens with spaces
func (m Mapping) String() string {
	return strings.Join(m.Tokens(), " ")
}

// MarshalJSON encodes the mapping as an object with numerically ordered keys
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 1; i <= len(m); i++ {
		if i > 1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`":`)
		v, err := json.Marshal(m[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
