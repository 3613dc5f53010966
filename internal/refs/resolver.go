package refs

import (
	"gtmaudit/internal/container"
)

// Resolver expands variable-to-variable reference chains. Expansion is a
// depth-first walk over each variable's own definition; the visited set is
// path-scoped (copied per branch), so a variable reached through two
// distinct paths contributes counts for both, while a variable appearing
// twice on one path terminates that branch. This guarantees termination on
// any finite reference graph, cycles included.
type Resolver struct {
	defs map[string]map[string]any
}

// NewResolver builds a resolver over the container's variable definitions.
func NewResolver(variables []container.Variable) *Resolver {
	defs := make(map[string]map[string]any, len(variables))
	for i := range variables {
		defs[variables[i].Name] = variables[i].Raw
	}
	return &Resolver{defs: defs}
}

// Resolve returns every variable name reachable from name's definition,
// mapped to its aggregate reference multiplicity across all simple paths.
// The start variable itself is not included unless it is reachable from one
// of its own references. Names with no matching definition still appear in
// the result (they may be built-ins absent from the export) but are never
// expanded.
func (r *Resolver) Resolve(name string) map[string]int {
	visited := map[string]struct{}{name: {}}
	out := make(map[string]int)
	r.expandInto(name, visited, out)
	return out
}

// expandInto accumulates the references of name's definition into out and
// recurses into each one. A reference already on the current path counts
// once as a direct edge but is not expanded (cycle edge dropped silently).
func (r *Resolver) expandInto(name string, visited map[string]struct{}, out map[string]int) {
	def, ok := r.defs[name]
	if !ok {
		return
	}

	for ref := range Scan(def) {
		out[ref]++
		if _, seen := visited[ref]; seen {
			continue
		}
		branch := make(map[string]struct{}, len(visited)+1)
		for v := range visited {
			branch[v] = struct{}{}
		}
		branch[ref] = struct{}{}
		r.expandInto(ref, branch, out)
	}
}

// Defined reports whether a variable definition exists for name.
func (r *Resolver) Defined(name string) bool {
	_, ok := r.defs[name]
	return ok
}
