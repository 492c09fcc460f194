package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	islgloss "github.com/tassa-yoniso-manasi-karoto/go-islgloss"
)

// output writes translation results to w
type output struct {
	w     io.Writer
	json  bool
	signs *islgloss.SignDictionary
}

func (o output) mapping(m islgloss.Mapping) error {
	if o.json {
		enc := json.NewEncoder(o.w)
		if o.signs != nil {
			return enc.Encode(struct {
				Glosses islgloss.Mapping        `json:"glosses"`
				Signs   islgloss.SignResolution `json:"signs"`
			}{m, o.signs.Resolve(m.Tokens())})
		}
		return enc.Encode(m)
	}

	fmt.Fprintln(o.w, m.String())
	o.clips(m.Tokens())
	return nil
}

// explainedSentence is the JSON form of one sentence in explain mode
type explainedSentence struct {
	islgloss.SentenceGloss
	Signs *islgloss.SignResolution `json:"signs,omitempty"`
}

func (o output) explain(glosses []islgloss.SentenceGloss) error {
	if o.json {
		out := make([]explainedSentence, len(glosses))
		for i, g := range glosses {
			out[i].SentenceGloss = g
			if o.signs != nil {
				res := o.signs.Resolve(g.Tokens)
				out[i].Signs = &res
			}
		}
		return json.NewEncoder(o.w).Encode(out)
	}

	for i, g := range glosses {
		fmt.Fprintf(o.w, "✍  %d %s\n", i, g.Text)
		order := strings.Join(g.Reordered, " ")
		if g.Fallback {
			order += "  (original order)"
		}
		fmt.Fprintf(o.w, "%12s %s\n", "reordered", order)
		fmt.Fprintf(o.w, "%12s %s\n", "gloss", strings.Join(g.Tokens, " "))
		o.clips(g.Tokens)
	}
	return nil
}

func (o output) clips(tokens []string) {
	if o.signs == nil {
		return
	}
	res := o.signs.Resolve(tokens)
	for _, c := range res.Clips {
		fmt.Fprintf(o.w, "%4d %-24q %s\n", c.Start, c.Phrase, c.Path)
	}
	if len(res.Missing) > 0 {
		fmt.Fprintf(o.w, "no clip: %s\n", strings.Join(res.Missing, " "))
	}
}
