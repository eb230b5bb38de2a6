package gen

import (
	"github.com/dataapis/protogen/pyast"
)

// Attribute is one exposed name inside a namespace: a function, a
// protocol-typed field, or a plain-typed constant.
type Attribute struct {
	Name         string
	Type         pyast.Expr
	Docstring    string // "" when absent
	TypeVarsUsed []TypeVarInfo
}

// AttributesToProtocol builds a namespace protocol whose members are one
// annotated field per attribute, in input order, each followed by its
// docstring when one exists.
//
// The protocol's parameter list is the union of every attribute's type
// parameters, not narrowed per field: the aggregate's parameter list must
// cover all fields simultaneously. The union is ordered by registry order so
// output is reproducible.
func AttributesToProtocol(name string, attrs []Attribute, reg *Registry) ProtocolData {
	var body []pyast.Stmt
	for _, attr := range attrs {
		body = append(body, &pyast.AnnAssign{
			Target:     pyast.NewName(attr.Name),
			Annotation: pyast.CloneExpr(attr.Type),
		})
		if attr.Docstring != "" {
			body = append(body, &pyast.ExprStmt{Value: pyast.Str(attr.Docstring)})
		}
	}

	inUse := map[string]bool{}
	for _, attr := range attrs {
		for _, tv := range attr.TypeVarsUsed {
			inUse[tv.Name] = true
		}
	}
	var used []TypeVarInfo
	for _, tv := range reg.Vars() {
		if inUse[tv.Name] {
			used = append(used, tv)
		}
	}

	return ProtocolData{
		Class: &pyast.ClassDef{
			Name:       name,
			Decorators: []pyast.Expr{pyast.NewName(runtimeCheckable)},
			Bases:      []pyast.Expr{pyast.NewName(protocolBase)},
			Body:       body,
			TypeParams: typeParamsOf(used),
		},
		TypeVarsUsed: used,
	}
}
