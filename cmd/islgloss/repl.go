package main

import (
	"context"
	"fmt"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	islgloss "github.com/tassa-yoniso-manasi-karoto/go-islgloss"
)

// repl reads sentences from the terminal and prints their glosses
type repl struct {
	translator *islgloss.Translator
	out        output
}

func (r *repl) Run(ctx context.Context) error {
	fmt.Fprintln(r.out.w, "🔑 type a sentence, 🔧 quit")
	history := []string{}

	for {
		in := prompt.Input("      ✋ ", r.completer(),
			prompt.OptionTitle("islgloss"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(8),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}
		if in == "" {
			continue
		}
		history = append(history, in)

		m, err := r.translator.Translate(ctx, in)
		if err != nil {
			fmt.Fprintf(r.out.w, "Error: %v\n", err)
			continue
		}
		if err := r.out.mapping(m); err != nil {
			return err
		}
	}
}

// completer suggests vocabulary words for the word under the cursor
func (r *repl) completer() func(in prompt.Document) []prompt.Suggest {
	words := r.translator.Vocabulary().Words()
	return func(in prompt.Document) []prompt.Suggest {
		w := strings.ToLower(in.GetWordBeforeCursor())
		if len(w) < 2 {
			return nil
		}
		s := []prompt.Suggest{}
		for _, word := range words {
			if strings.HasPrefix(word, w) {
				s = append(s, prompt.Suggest{Text: word, Description: "sign"})
			}
		}
		return s
	}
}
