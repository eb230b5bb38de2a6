package gen

import (
	"strings"

	"github.com/dataapis/protogen/pyast"
)

// FunctionToProtocol rewrites a function declaration into a single-method
// callable protocol.
//
// The function's signature and docstring survive; the implementation is
// discarded. The method is renamed __call__, gains a leading positional-only
// self parameter, is marked abstract, and its body becomes a bare ellipsis.
// The input declaration is never modified.
func FunctionToProtocol(fn *pyast.FunctionDef, reg *Registry) ProtocolData {
	docstring, hasDoc := pyast.Docstring(fn.Body)

	method := &pyast.FunctionDef{
		Name:    callMethodName,
		Args:    pyast.CloneArguments(fn.Args),
		Returns: pyast.CloneExpr(fn.Returns),
		Body:    []pyast.Stmt{pyast.EllipsisStmt()},
	}
	method.Decorators = cloneDecorators(fn.Decorators)
	method.Decorators = append(method.Decorators, pyast.NewName(abstractMethod))
	method.Args.PosOnly = append([]pyast.Arg{{Name: "self"}}, method.Args.PosOnly...)

	rendered := pyast.UnparseArguments(method.Args)
	if method.Returns != nil {
		rendered += pyast.Unparse(method.Returns)
	}
	used := typeVarsUsed(rendered, reg)

	var body []pyast.Stmt
	if hasDoc {
		body = append(body, &pyast.ExprStmt{Value: pyast.Str(docstring)})
	}
	body = append(body, method)

	return ProtocolData{
		Class: &pyast.ClassDef{
			Name:       fn.Name,
			Decorators: []pyast.Expr{pyast.NewName(runtimeCheckable)},
			Bases:      []pyast.Expr{pyast.NewName(protocolBase)},
			Body:       body,
			TypeParams: typeParamsOf(used),
		},
		TypeVarsUsed: used,
	}
}

// IsAlias reports whether a function declaration is a pure re-export of
// another declaration, denoted by the alias marker in its docstring. Alias
// functions contribute a namespace attribute but no emitted protocol.
func IsAlias(fn *pyast.FunctionDef) bool {
	doc, ok := pyast.Docstring(fn.Body)
	return ok && strings.Contains(doc, aliasMarker)
}

func cloneDecorators(decorators []pyast.Expr) []pyast.Expr {
	out := make([]pyast.Expr, 0, len(decorators)+1)
	for _, d := range decorators {
		out = append(out, pyast.CloneExpr(d))
	}
	return out
}
