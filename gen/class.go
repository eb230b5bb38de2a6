package gen

import (
	"github.com/dataapis/protogen/pyast"
)

// ClassToProtocol rewrites a class declaration into a structurally-typed
// protocol.
//
// Unlike the function rule, class members keep their bodies: a method whose
// body does not already end in a bare ellipsis gets one appended after
// whatever statements it carries. Equality and inequality dunders gain an
// override-suppression marker because their parameter types deliberately
// diverge from object's. The input declaration is never modified; the
// protocol is a freshly built value.
func ClassToProtocol(cls *pyast.ClassDef, reg *Registry) ProtocolData {
	rendered := pyast.Render(&pyast.Module{Body: []pyast.Stmt{cls}})
	used := typeVarsUsed(rendered, reg)

	body := pyast.CloneBody(cls.Body)
	for _, s := range body {
		method, ok := s.(*pyast.FunctionDef)
		if !ok {
			continue
		}
		if len(method.Body) == 0 || !pyast.IsEllipsisStmt(method.Body[len(method.Body)-1]) {
			method.Body = append(method.Body, pyast.EllipsisStmt())
		}
		if method.Name == "__eq__" || method.Name == "__ne__" {
			method.LineComment = overrideSuppression
		}
	}

	return ProtocolData{
		Class: &pyast.ClassDef{
			Name:       cls.Name,
			Decorators: []pyast.Expr{pyast.NewName(runtimeCheckable)},
			Bases:      []pyast.Expr{pyast.NewName(protocolBase)},
			Body:       body,
			TypeParams: typeParamsOf(used),
		},
		TypeVarsUsed: used,
	}
}
