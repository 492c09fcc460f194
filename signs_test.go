package islgloss

import (
	"reflect"
	"strings"
	"testing"
)

func TestSignDictionaryResolve(t *testing.T) {
	d := NewSignDictionary(map[string]string{
		"good morning":      "clips/good_morning.mp4",
		"good":              "clips/good.mp4",
		"morning":           "clips/morning.mp4",
		"thank you":         "clips/thank_you.mp4",
		"how are you doing": "clips/how_are_you_doing.mp4",
		"A":                 "clips/letters/a.mp4",
	})

	res := d.Resolve([]string{"good", "morning", "he", "thank", "you", "A", "how", "are", "you", "doing"})

	want := []SignClip{
		{Phrase: "good morning", Path: "clips/good_morning.mp4", Start: 1, Words: 2},
		{Phrase: "thank you", Path: "clips/thank_you.mp4", Start: 4, Words: 2},
		{Phrase: "a", Path: "clips/letters/a.mp4", Start: 6, Words: 1},
		{Phrase: "how are you doing", Path: "clips/how_are_you_doing.mp4", Start: 7, Words: 4},
	}
	if !reflect.DeepEqual(res.Clips, want) {
		t.Errorf("clips = %+v\nwant %+v", res.Clips, want)
	}
	if !reflect.DeepEqual(res.Missing, []string{"he"}) {
		t.Errorf("missing = %v", res.Missing)
	}
}

func TestSignDictionaryPhraseLimit(t *testing.T) {
	d := NewSignDictionary(map[string]string{
		"one two three four five": "clips/too_long.mp4",
		"one":                     "clips/one.mp4",
	})
	res := d.Resolve(strings.Fields("one two three four five"))
	if len(res.Clips) != 1 || res.Clips[0].Phrase != "one" {
		t.Errorf("clips = %+v", res.Clips)
	}
	if len(res.Missing) != 4 {
		t.Errorf("missing = %v", res.Missing)
	}
}

func TestLoadSignDictionary(t *testing.T) {
	d, err := LoadSignDictionary(strings.NewReader(`{"Hello": "clips/hello.mp4", "thank  you": "clips/thank_you.mp4"}`))
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d", d.Len())
	}
	res := d.Resolve([]string{"hello", "thank", "you"})
	if len(res.Clips) != 2 || len(res.Missing) != 0 {
		t.Errorf("got %+v", res)
	}

	if _, err := LoadSignDictionary(strings.NewReader(`["not", "an", "object"]`)); err == nil {
		t.Error("expected error for non-object JSON")
	}
}
