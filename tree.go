package islgloss

import (
	"fmt"
	"strings"
	"unicode"
)

// Tree is a constituency parse tree. Internal nodes carry a phrase label,
// leaves carry a word's surface text and its position in the sentence.
type Tree struct {
	Label    string
	Children []*Tree

	// Word is the 0-based index of the word a leaf stands for, -1 on internal nodes.
	Word int
}

// NewLeaf returns a leaf for word i
func NewLeaf(text string, i int) *Tree {
	return &Tree{Label: text, Word: i}
}

// NewNode returns an internal node
func NewNode(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children, Word: -1}
}

// IsLeaf reports whether t is a terminal
func (t *Tree) IsLeaf() bool {
	return len(t.Children) == 0 && t.Word >= 0
}

// Leaves returns the leaves of t in document order
func (t *Tree) Leaves() []*Tree {
	var out []*Tree
	t.walk(func(n *Tree) {
		if n.IsLeaf() {
			out = append(out, n)
		}
	})
	return out
}

// Words returns the surface text of the leaves in document order
func (t *Tree) Words() []string {
	leaves := t.Leaves()
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = l.Label
	}
	return out
}

func (t *Tree) walk(fn func(*Tree)) {
	fn(t)
	for _, c := range t.Children {
		c.walk(fn)
	}
}

// String renders t in Penn Treebank bracket notation
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *strings.Builder) {
	if t.IsLeaf() {
		b.WriteString(t.Label)
		return
	}
	b.WriteByte('(')
	b.WriteString(t.Label)
	for _, c := range t.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// ParseTree reads a tree in Penn Treebank bracket notation, e.g.
//
//	(ROOT (S (NP (PRP He)) (VP (VBZ eats) (NP (NN rice))) (. .)))
//
// Leaves are numbered in document order starting at 0.
func ParseTree(s string) (*Tree, error) {
	r := &treeReader{src: s}
	r.skipSpace()
	if r.eof() {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedTree)
	}
	t, err := r.node()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, fmt.Errorf("%w: trailing data at offset %d", ErrMalformedTree, r.pos)
	}
	// Some parsers emit an unlabeled outer bracket: "( (S ...))"
	if t.Label == "" {
		if len(t.Children) != 1 {
			return nil, fmt.Errorf("%w: unlabeled root with %d children", ErrMalformedTree, len(t.Children))
		}
		t.Label = LabelRoot
	}
	return t, nil
}

type treeReader struct {
	src    string
	pos    int
	leaves int
}

func (r *treeReader) eof() bool {
	return r.pos >= len(r.src)
}

func (r *treeReader) skipSpace() {
	for !r.eof() && unicode.IsSpace(rune(r.src[r.pos])) {
		r.pos++
	}
}

func (r *treeReader) token() string {
	start := r.pos
	for !r.eof() {
		c := r.src[r.pos]
		if c == '(' || c == ')' || unicode.IsSpace(rune(c)) {
			break
		}
		r.pos++
	}
	return r.src[start:r.pos]
}

func (r *treeReader) node() (*Tree, error) {
	if r.src[r.pos] != '(' {
		return nil, fmt.Errorf("%w: expected '(' at offset %d", ErrMalformedTree, r.pos)
	}
	r.pos++
	r.skipSpace()
	if r.eof() {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrMalformedTree)
	}

	n := NewNode(r.token())
	for {
		r.skipSpace()
		if r.eof() {
			return nil, fmt.Errorf("%w: unbalanced parentheses", ErrMalformedTree)
		}
		switch r.src[r.pos] {
		case ')':
			r.pos++
			if len(n.Children) == 0 {
				return nil, fmt.Errorf("%w: node %q has no children", ErrMalformedTree, n.Label)
			}
			if n.Label == "" && len(n.Children) == 1 && n.Children[0].IsLeaf() {
				return nil, fmt.Errorf("%w: missing label before %q", ErrMalformedTree, n.Children[0].Label)
			}
			return n, nil
		case '(':
			c, err := r.node()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)
		default:
			n.Children = append(n.Children, NewLeaf(r.token(), r.leaves))
			r.leaves++
		}
	}
}
