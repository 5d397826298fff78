package graph

// DominatorTree holds the immediate dominator of every node reachable
// from the graph's root. Nodes unreachable from the root have no
// dominator and are excluded from retained-size propagation.
type DominatorTree struct {
	idom   []int32 // node index -> immediate dominator index; -1 = none
	dfn    []int32 // DFS number, 0 = unreachable
	vertex []int32 // vertex[i] = node with DFS number i (1-based)
	n      int32   // number of reachable nodes
	root   int32
}

// ImmediateDominator returns the immediate dominator of a node index.
// The second return is false for the root and for unreachable nodes.
func (t *DominatorTree) ImmediateDominator(idx int) (int, bool) {
	d := t.idom[idx]
	if d < 0 {
		return 0, false
	}
	return int(d), true
}

// Reachable reports whether a node is reachable from the root.
func (t *DominatorTree) Reachable(idx int) bool {
	return t.dfn[idx] != 0
}

// lengauerTarjanState holds the working arrays for the dominator
// computation, indexed by node index. semi holds DFS numbers; ancestor
// and label implement the path-compressed link-eval forest.
type lengauerTarjanState struct {
	parent   []int32
	semi     []int32
	ancestor []int32
	label    []int32
	bucket   [][]int32
}

// ComputeDominatorTree computes immediate dominators for all nodes
// reachable from the graph's root using the Lengauer-Tarjan algorithm.
//
// Reference: "A Fast Algorithm for Finding Dominators in a Flowgraph",
// Lengauer and Tarjan, 1979. Iterative DFS keeps deep graphs from
// overflowing the stack.
func ComputeDominatorTree(g *ReferenceGraph) *DominatorTree {
	n := g.NodeCount()
	root := int32(g.Root())

	tree := &DominatorTree{
		idom:   make([]int32, n),
		dfn:    make([]int32, n),
		vertex: make([]int32, n+1),
		root:   root,
	}
	for i := range tree.idom {
		tree.idom[i] = -1
	}
	if root < 0 || n == 0 {
		return tree
	}

	state := &lengauerTarjanState{
		parent:   make([]int32, n),
		semi:     make([]int32, n),
		ancestor: make([]int32, n),
		label:    make([]int32, n),
		bucket:   make([][]int32, n),
	}
	for i := int32(0); i < int32(n); i++ {
		state.ancestor[i] = -1
		state.label[i] = i
	}

	// Step 1: DFS from the root to number reachable nodes.
	type dfsFrame struct {
		v int32
		i int
	}
	stack := make([]dfsFrame, 0, 64)

	tree.n++
	tree.dfn[root] = tree.n
	tree.vertex[tree.n] = root
	state.semi[root] = tree.n
	stack = append(stack, dfsFrame{v: root})

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		succs := g.Successors(int(frame.v))

		advanced := false
		for frame.i < len(succs) {
			w := succs[frame.i]
			frame.i++
			if tree.dfn[w] == 0 {
				tree.n++
				tree.dfn[w] = tree.n
				tree.vertex[tree.n] = w
				state.semi[w] = tree.n
				state.parent[w] = frame.v
				stack = append(stack, dfsFrame{v: w})
				advanced = true
				break
			}
		}
		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}

	// Build predecessor lists over reachable nodes only.
	predecessors := make([][]int32, n)
	for v := 0; v < n; v++ {
		if tree.dfn[v] == 0 {
			continue
		}
		for _, w := range g.Successors(v) {
			if tree.dfn[w] != 0 {
				predecessors[w] = append(predecessors[w], int32(v))
			}
		}
	}

	eval := func(v int32) int32 {
		if state.ancestor[v] < 0 {
			return v
		}
		compressPath(state, v)
		return state.label[v]
	}

	// Steps 2 & 3: semidominators in reverse DFS order, with implicit
	// idom assignment through the buckets.
	for i := tree.n; i >= 2; i-- {
		w := tree.vertex[i]

		for _, v := range predecessors[w] {
			var u int32
			if tree.dfn[v] <= tree.dfn[w] {
				u = v
			} else {
				u = eval(v)
			}
			if state.semi[u] < state.semi[w] {
				state.semi[w] = state.semi[u]
			}
		}

		semiNode := tree.vertex[state.semi[w]]
		state.bucket[semiNode] = append(state.bucket[semiNode], w)

		parent := state.parent[w]
		state.ancestor[w] = parent

		for _, v := range state.bucket[parent] {
			u := eval(v)
			if state.semi[u] < state.semi[v] {
				tree.idom[v] = u
			} else {
				tree.idom[v] = parent
			}
		}
		state.bucket[parent] = nil
	}

	// Step 4: fill in deferred idoms in forward DFS order.
	for i := int32(2); i <= tree.n; i++ {
		w := tree.vertex[i]
		if tree.idom[w] != tree.vertex[state.semi[w]] {
			tree.idom[w] = tree.idom[tree.idom[w]]
		}
	}
	tree.idom[root] = -1

	return tree
}

// compressPath performs iterative path compression for eval. Afterwards
// label[v] holds the node with minimum semi on the path from v to the
// root of its forest tree.
func compressPath(state *lengauerTarjanState, v int32) {
	path := make([]int32, 0, 32)
	current := v
	for state.ancestor[current] >= 0 && state.ancestor[state.ancestor[current]] >= 0 {
		path = append(path, current)
		current = state.ancestor[current]
	}

	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		anc := state.ancestor[node]
		if state.semi[state.label[anc]] < state.semi[state.label[node]] {
			state.label[node] = state.label[anc]
		}
		state.ancestor[node] = state.ancestor[anc]
	}
}
