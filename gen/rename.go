package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dataapis/protogen/pyast"
)

// RenameTypeVars rewrites every occurrence of a registered type-parameter
// name to its canonical display form: prefix + capitalized name.
//
// The pass covers all three reference positions uniformly: bare name
// expressions, annotations (which are name expressions structurally), and
// generic-parameter-list entries, so declaration and use sites agree. It is
// idempotent: a renamed identifier no longer matches any registry name, so a
// second pass leaves the tree unchanged. Run after composition so names
// gathered transitively through nested protocol references are covered.
func RenameTypeVars(m *pyast.Module, reg *Registry, prefix string) {
	pyast.WalkExprs(m, func(e pyast.Expr) {
		if name, ok := e.(*pyast.Name); ok && reg.Contains(name.ID) {
			name.ID = prefix + pyCapitalize(name.ID)
		}
	})
	pyast.WalkTypeParams(m, func(tp *pyast.TypeParam) {
		if reg.Contains(tp.Name) {
			tp.Name = prefix + pyCapitalize(tp.Name)
		}
	})
}

// pyCapitalize matches Python's str.capitalize: first rune upper, rest lower.
func pyCapitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// capitalize upper-cases only the first rune, preserving the rest. Used for
// namespace protocol names ("fft" -> "FftNamespace").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
