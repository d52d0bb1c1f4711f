package expr

// Node is the closed set of expression tree nodes. The variant set is sealed
// by the unexported marker method so evaluation can switch exhaustively.
// Nodes are immutable after construction: children are fully formed before
// the parent exists, and the tree is a strict binary tree with no sharing.
type Node interface {
	node()
}

// Number is a numeric literal leaf.
type Number struct {
	Val float64
}

// Variable is a named variable leaf, resolved against a Context.
type Variable struct {
	Name string
}

// Binary applies one of + - * / to two subtrees.
type Binary struct {
	Op          string
	Left, Right Node
}

func (Number) node()   {}
func (Variable) node() {}
func (Binary) node()   {}
