package islgloss

// flatNode is a tree node addressed by its pre-order number. The subtree of
// node i spans the pre-order numbers [i, end).
type flatNode struct {
	tree   *Tree
	parent int
	end    int
	leaves int
}

func flatten(root *Tree) []flatNode {
	var nodes []flatNode
	var visit func(t *Tree, parent int) int
	visit = func(t *Tree, parent int) int {
		i := len(nodes)
		nodes = append(nodes, flatNode{tree: t, parent: parent})
		leaves := 0
		if t.IsLeaf() {
			leaves = 1
		}
		for _, c := range t.Children {
			leaves += visit(c, i)
		}
		nodes[i].end = len(nodes)
		nodes[i].leaves = leaves
		return leaves
	}
	visit(root, -1)
	return nodes
}

// reorderer holds the state of a single reordering. It is never reused.
type reorderer struct {
	nodes   []flatNode
	visited []bool
	out     []int // word indices in gloss order
}

// take appends the leaves of node i to the output and marks its whole
// subtree visited, so no leaf can be emitted twice.
func (r *reorderer) take(i int) {
	for j := i; j < r.nodes[i].end; j++ {
		r.visited[j] = true
		if n := r.nodes[j].tree; n.IsLeaf() {
			r.out = append(r.out, n.Word)
		}
	}
}

func (r *reorderer) isInternal(i int, labels ...string) bool {
	n := r.nodes[i].tree
	if n.IsLeaf() {
		return false
	}
	for _, l := range labels {
		if n.Label == l {
			return true
		}
	}
	return false
}

// nounClause fronts a noun phrase unless it or its parent was already taken.
func (r *reorderer) nounClause(i int) {
	p := r.nodes[i].parent
	if r.visited[i] || (p >= 0 && r.visited[p]) {
		return
	}
	r.take(i)
}

// verbClause fronts every NP or PRP found under a VP or PRP node, in
// pre-order, the node itself included.
func (r *reorderer) verbClause(i int) {
	for j := i; j < r.nodes[i].end; j++ {
		if !r.visited[j] && r.isInternal(j, LabelNP, LabelPRP) {
			r.take(j)
		}
	}
}

// Reorder computes the gloss order of a parsed sentence and returns it as a
// permutation of word indices. Noun phrases are fronted in document order,
// noun phrases and pronouns nested in verb phrases follow, and every
// remaining terminal keeps its original relative order.
//
// Sentences made only of single characters are returned unchanged, and
// tree may be nil in that case.
func Reorder(words []string, tree *Tree) []int {
	if allSingleChars(words) || tree == nil {
		return identity(len(words))
	}

	nodes := flatten(tree)
	r := &reorderer{
		nodes:   nodes,
		visited: make([]bool, len(nodes)),
		out:     make([]int, 0, len(words)),
	}

	for i := range nodes {
		switch {
		case r.isInternal(i, LabelNP):
			r.nounClause(i)
		case r.isInternal(i, LabelVP, LabelPRP):
			r.verbClause(i)
		}
	}

	for i := range nodes {
		if !r.visited[i] && nodes[i].leaves == 1 {
			r.take(i)
		}
	}

	return r.out
}

// ReorderWords applies Reorder and returns the words themselves
func ReorderWords(words []string, tree *Tree) []string {
	order := Reorder(words, tree)
	out := make([]string, len(order))
	for i, j := range order {
		out[i] = words[j]
	}
	return out
}

// IsPermutation reports whether order holds every index in [0, n) exactly once
func IsPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

func allSingleChars(words []string) bool {
	for _, w := range words {
		if len([]rune(w)) != 1 {
			return false
		}
	}
	return true
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
