package islgloss

import (
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func mustParseTree(t *testing.T, s string) *Tree {
	t.Helper()
	tree, err := ParseTree(s)
	if err != nil {
		t.Fatalf("ParseTree(%q): %v", s, err)
	}
	return tree
}

var reorderCases = []struct {
	name string
	tree string
	want string
}{
	{
		name: "subject and object fronted",
		tree: "(ROOT (S (NP (PRP He)) (VP (VBZ eats) (NP (NN rice))) (. .)))",
		want: "He rice eats .",
	},
	{
		name: "intransitive",
		tree: "(ROOT (S (NP (NNP Zorblex)) (VP (VBZ runs)) (. .)))",
		want: "Zorblex runs .",
	},
	{
		name: "nested noun phrase kept whole",
		tree: "(ROOT (S (NP (NP (DT the) (NN dog)) (PP (IN of) (NP (NNP John)))) (VP (VBD barked))))",
		want: "the dog of John barked",
	},
	{
		name: "objects pulled out of verb phrase",
		tree: "(ROOT (S (VP (VB Give) (NP (PRP me)) (NP (DT the) (NN book))) (. !)))",
		want: "me the book Give !",
	},
	{
		name: "pronoun in verb phrase before later noun phrase",
		tree: "(ROOT (S (VP (VB see) (PRP him)) (NP (DT the) (NN dog))))",
		want: "him the dog see",
	},
	{
		name: "auxiliary and adjective",
		tree: "(ROOT (S (NP (PRP I)) (VP (VBP am) (ADJP (JJ happy))) (. .)))",
		want: "I am happy .",
	},
	{
		name: "relative clause inside noun phrase",
		tree: "(ROOT (S (NP (NP (DT The) (NN girl)) (SBAR (WHNP (WP who)) (S (VP (VBD sang))))) (VP (VBD left))))",
		want: "The girl who sang left",
	},
	{
		name: "single word",
		tree: "(ROOT (INTJ (UH Hello)))",
		want: "Hello",
	},
}

func TestReorder(t *testing.T) {
	for _, tc := range reorderCases {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustParseTree(t, tc.tree)
			got := strings.Join(ReorderWords(tree.Words(), tree), " ")
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReorderSingleCharacters(t *testing.T) {
	words := []string{"U", "S", "A"}
	// the tree would move words around if it were used
	tree := mustParseTree(t, "(ROOT (S (VP (VB U) (NP (NN S))) (NP (NN A))))")

	if got := ReorderWords(words, tree); !reflect.DeepEqual(got, words) {
		t.Errorf("got %v, want %v", got, words)
	}
	if got := ReorderWords(words, nil); !reflect.DeepEqual(got, words) {
		t.Errorf("nil tree: got %v, want %v", got, words)
	}
	if got := Reorder(nil, nil); len(got) != 0 {
		t.Errorf("empty sentence: got %v", got)
	}
}

func TestReorderIsPermutation(t *testing.T) {
	for _, tc := range reorderCases {
		tree := mustParseTree(t, tc.tree)
		n := len(tree.Leaves())
		if order := Reorder(tree.Words(), tree); !IsPermutation(order, n) {
			t.Errorf("%s: %v is not a permutation of %d leaves", tc.name, order, n)
		}
	}
}

// randomTree builds a tree whose internal nodes are drawn from the labels
// the reorderer reacts to, nested arbitrarily.
func randomTree(rng *rand.Rand, depth int, next *int) *Tree {
	labels := []string{"NP", "VP", "PRP", "S", "PP", "SBAR", "ADJP"}
	if depth == 0 || rng.Intn(4) == 0 {
		leaf := NewLeaf(fmt.Sprintf("w%d", *next), *next)
		*next++
		return NewNode("NN", leaf)
	}
	n := NewNode(labels[rng.Intn(len(labels))])
	for k := 1 + rng.Intn(3); k > 0; k-- {
		n.Children = append(n.Children, randomTree(rng, depth-1, next))
	}
	return n
}

func TestReorderRandomTreesArePermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		next := 0
		tree := NewNode(LabelRoot, randomTree(rng, 6, &next))
		words := tree.Words()

		order := Reorder(words, tree)
		if !IsPermutation(order, len(words)) {
			t.Fatalf("tree %s: order %v is not a permutation", tree, order)
		}
	}
}

func TestIsPermutation(t *testing.T) {
	cases := []struct {
		order []int
		n     int
		want  bool
	}{
		{[]int{2, 0, 1}, 3, true},
		{[]int{}, 0, true},
		{[]int{0, 0, 1}, 3, false},
		{[]int{0, 1}, 3, false},
		{[]int{0, 1, 3}, 3, false},
		{[]int{-1, 0, 1}, 3, false},
	}
	for _, tc := range cases {
		if got := IsPermutation(tc.order, tc.n); got != tc.want {
			t.Errorf("IsPermutation(%v, %d) = %v, want %v", tc.order, tc.n, got, tc.want)
		}
	}
}
