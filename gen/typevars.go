// Package gen is the declaration-to-interface transformation engine.
//
// It rewrites parsed array-API stub declarations into structurally-typed
// Protocol classes: functions become single-method callable protocols,
// classes become protocols in place of their nominal bases, and module-level
// attributes are folded into namespace protocols. The rules intentionally
// mirror the behavior of the upstream generator, including its documented
// tolerances (see typeVarsUsed).
package gen

import (
	"sort"
	"strings"

	"github.com/dataapis/protogen/pyast"
)

// TypeVarInfo identifies one generic type parameter declared by the stub
// corpus, with an optional bound.
type TypeVarInfo struct {
	Name  string
	Bound string // "" when unbounded
}

// Registry is the read-only set of type parameters for one corpus. It is
// built once from the _types module and threaded into every transformer.
type Registry struct {
	vars  []TypeVarInfo
	names map[string]int
}

// RegistryOptions configures registry construction.
type RegistryOptions struct {
	// Bounds overrides the bound for known parameter names.
	Bounds map[string]string

	// Inject adds well-known auxiliary parameters that the scanned module
	// does not declare itself.
	Inject []string
}

// DefaultRegistryOptions returns the overrides used for the array-API corpus:
// the array parameter is bound to the array protocol, and the device/dtype
// capability parameters are injected.
func DefaultRegistryOptions() RegistryOptions {
	return RegistryOptions{
		Bounds: map[string]string{"array": "Array"},
		Inject: []string{"device", "dtype"},
	}
}

// CollectTypeVars scans the _types module body for TypeVar declarations and
// builds the registry.
//
// Only assignments whose right-hand side is a TypeVar(...) call with a string
// literal first argument are recorded; a non-literal first argument is
// skipped silently, by design. The result is ordered by name.
func CollectTypeVars(body []pyast.Stmt, opts RegistryOptions) *Registry {
	seen := map[string]bool{}
	var vars []TypeVarInfo

	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		vars = append(vars, TypeVarInfo{Name: name, Bound: opts.Bounds[name]})
	}

	for _, s := range body {
		assign, ok := s.(*pyast.Assign)
		if !ok {
			continue
		}
		call, ok := assign.Value.(*pyast.Call)
		if !ok {
			continue
		}
		fn, ok := call.Func.(*pyast.Name)
		if !ok || fn.ID != "TypeVar" || len(call.Args) == 0 {
			continue
		}
		lit, ok := call.Args[0].(*pyast.Constant)
		if !ok || lit.Kind != pyast.ConstString {
			continue
		}
		add(lit.Str)
	}

	for _, name := range opts.Inject {
		add(name)
	}

	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	r := &Registry{vars: vars, names: make(map[string]int, len(vars))}
	for i, v := range vars {
		r.names[v.Name] = i
	}
	return r
}

// Vars returns the registered parameters in name order.
func (r *Registry) Vars() []TypeVarInfo {
	return r.vars
}

// Contains reports whether name is a registered type parameter.
func (r *Registry) Contains(name string) bool {
	_, ok := r.names[name]
	return ok
}

// Len returns the number of registered parameters.
func (r *Registry) Len() int {
	return len(r.vars)
}

// typeVarsUsed returns the registry entries whose names occur as substrings
// of the rendered text.
//
// The substring test over-matches on partial-name collisions (a parameter
// named T would match any identifier containing a T). This looseness is
// deliberate: it reproduces the upstream generator's membership rule, which
// the corpus's declaration shapes have been tuned against.
func typeVarsUsed(rendered string, reg *Registry) []TypeVarInfo {
	var used []TypeVarInfo
	for _, tv := range reg.vars {
		if strings.Contains(rendered, tv.Name) {
			used = append(used, tv)
		}
	}
	return used
}

// typeParamsOf converts registry entries to generic-parameter declarations.
func typeParamsOf(vars []TypeVarInfo) []pyast.TypeParam {
	if len(vars) == 0 {
		return nil
	}
	params := make([]pyast.TypeParam, len(vars))
	for i, tv := range vars {
		var bound pyast.Expr
		if tv.Bound != "" {
			bound = pyast.NewName(tv.Bound)
		}
		params[i] = pyast.TypeParam{Name: tv.Name, Bound: bound}
	}
	return params
}
