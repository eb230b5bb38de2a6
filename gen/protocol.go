package gen

import (
	"github.com/dataapis/protogen/pyast"
)

// Reserved names in the generated output.
const (
	// callMethodName is the method every function-derived protocol exposes.
	callMethodName = "__call__"

	// protocolBase is the structural-interface base class.
	protocolBase = "Protocol"

	// runtimeCheckable marks generated protocols structurally checkable at
	// runtime.
	runtimeCheckable = "runtime_checkable"

	// abstractMethod marks the call method abstract.
	abstractMethod = "abstractmethod"

	// aliasMarker in a function docstring denotes a pure re-export: the
	// protocol is computed for bookkeeping but not emitted.
	aliasMarker = "Alias"

	// overrideSuppression annotates equality dunders whose signatures
	// deliberately diverge from object's.
	overrideSuppression = "type: ignore[override]"
)

// ProtocolData is one generated protocol class together with the subset of
// registry parameters its members use.
type ProtocolData struct {
	Class        *pyast.ClassDef
	TypeVarsUsed []TypeVarInfo
}

// Ref returns a type reference to the protocol, parameterized by its used
// type parameters: name[tv1, tv2]. A protocol that uses none is referenced
// by bare name.
func (p ProtocolData) Ref() pyast.Expr {
	if len(p.TypeVarsUsed) == 0 {
		return pyast.NewName(p.Class.Name)
	}
	elts := make([]pyast.Expr, len(p.TypeVarsUsed))
	for i, tv := range p.TypeVarsUsed {
		elts[i] = pyast.NewName(tv.Name)
	}
	return &pyast.Subscript{
		Value: pyast.NewName(p.Class.Name),
		Index: &pyast.Tuple{Elts: elts},
	}
}
