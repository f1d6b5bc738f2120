package planner

import (
	"sort"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/zorkpp/zorkpp/internal/model"
	"github.com/zorkpp/zorkpp/internal/zerr"
)

// moduleNode is a gonum graph node identifying a module interface by name.
type moduleNode struct {
	id   int64
	name string
}

func (n moduleNode) ID() int64 { return n.id }

// checkAcyclic validates the module dependency graph implied by
// modules.Interfaces and modules.Implementations: an edge runs from a
// dependency to its dependent, so a cycle among module names is a
// configuration error (BadModel), not something the planner can silently
// work around the way the teacher's package-graph scheduler breaks
// dependency cycles between external packages — a C++ module cycle always
// indicates a mistake in the project description.
func checkAcyclic(modules model.Modules) error {
	g := simple.NewDirectedGraph()
	nodes := make(map[string]moduleNode)

	nodeFor := func(name string) moduleNode {
		if n, ok := nodes[name]; ok {
			return n
		}
		n := moduleNode{id: int64(len(nodes)), name: name}
		nodes[name] = n
		g.AddNode(n)
		return n
	}

	for _, ifc := range modules.Interfaces {
		dependent := nodeFor(ifc.ModuleName)
		for _, dep := range ifc.Dependencies {
			g.SetEdge(g.NewEdge(nodeFor(dep), dependent))
		}
	}
	for _, impl := range modules.Implementations {
		// Implementations do not introduce a named node of their own; only
		// interface-to-interface cycles are meaningful here.
		for _, dep := range impl.Dependencies {
			nodeFor(dep)
		}
	}

	if _, err := topo.Sort(g); err != nil {
		var unorderable topo.Unorderable
		if xerrors.As(err, &unorderable) {
			names := make([]string, 0)
			for _, component := range unorderable {
				for _, n := range component {
					names = append(names, n.(moduleNode).name)
				}
			}
			sort.Strings(names)
			return zerr.New(zerr.BadModel, "model: circular module dependency among %v", names)
		}
		return zerr.Wrap(zerr.BadModel, err)
	}
	return nil
}
