package islgloss

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTreeRoundTrip(t *testing.T) {
	inputs := []string{
		"(ROOT (S (NP (PRP He)) (VP (VBZ eats) (NP (NN rice))) (. .)))",
		"(ROOT (NP (NNP Zorblex)))",
		"(ROOT (FRAG (INTJ (UH Hello)) (, ,) (NP (NNP Ravi))))",
	}
	for _, in := range inputs {
		tree, err := ParseTree(in)
		if err != nil {
			t.Fatalf("ParseTree(%q): %v", in, err)
		}
		if got := tree.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}

func TestParseTreeLeaves(t *testing.T) {
	tree, err := ParseTree("(ROOT\n  (S (NP (PRP He))\n     (VP (VBZ eats) (NP (NN rice)))\n     (. .)))")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"He", "eats", "rice", "."}
	if got := tree.Words(); !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
	for i, l := range tree.Leaves() {
		if l.Word != i {
			t.Errorf("leaf %q has Word %d, want %d", l.Label, l.Word, i)
		}
	}
	if tree.Label != LabelRoot {
		t.Errorf("root label = %q", tree.Label)
	}
}

func TestParseTreeUnlabeledRoot(t *testing.T) {
	tree, err := ParseTree("( (S (NP (NNS Dogs)) (VP (VBP bark))))")
	if err != nil {
		t.Fatal(err)
	}
	if tree.Label != LabelRoot {
		t.Errorf("root label = %q, want %q", tree.Label, LabelRoot)
	}
	if len(tree.Leaves()) != 2 {
		t.Errorf("got %d leaves, want 2", len(tree.Leaves()))
	}
}

func TestParseTreeMalformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"He eats rice",
		"(ROOT (S (NP (PRP He))",
		"(ROOT (S (NP (PRP He))))) extra",
		"(ROOT (NP))",
		"(ROOT ( He))",
	}
	for _, in := range inputs {
		_, err := ParseTree(in)
		if err == nil {
			t.Errorf("ParseTree(%q): expected error", in)
			continue
		}
		if !errors.Is(err, ErrMalformedTree) {
			t.Errorf("ParseTree(%q): error %v does not wrap ErrMalformedTree", in, err)
		}
	}
}
