package pyast

import (
	"strings"
)

// Unparse renders an expression to Python source text.
//
// The rendering follows CPython's ast.unparse conventions where they matter
// for compatibility: tuple subscripts lose their parentheses, a one-element
// tuple subscript keeps its trailing comma, and an empty tuple subscript
// renders as "[()]".
func Unparse(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Name:
		sb.WriteString(v.ID)
	case *Constant:
		writeConstant(sb, v)
	case *Attribute:
		writeExpr(sb, v.Value)
		sb.WriteByte('.')
		sb.WriteString(v.Attr)
	case *Subscript:
		writeExpr(sb, v.Value)
		sb.WriteByte('[')
		if t, ok := v.Index.(*Tuple); ok {
			switch len(t.Elts) {
			case 0:
				sb.WriteString("()")
			case 1:
				writeExpr(sb, t.Elts[0])
				sb.WriteByte(',')
			default:
				writeExprList(sb, t.Elts)
			}
		} else {
			writeExpr(sb, v.Index)
		}
		sb.WriteByte(']')
	case *Tuple:
		sb.WriteByte('(')
		writeExprList(sb, v.Elts)
		if len(v.Elts) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case *List:
		sb.WriteByte('[')
		writeExprList(sb, v.Elts)
		sb.WriteByte(']')
	case *Dict:
		sb.WriteByte('{')
		for i := range v.Keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, v.Keys[i])
			sb.WriteString(": ")
			writeExpr(sb, v.Values[i])
		}
		sb.WriteByte('}')
	case *Call:
		writeExpr(sb, v.Func)
		sb.WriteByte('(')
		for i, a := range v.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, a)
		}
		for i, kw := range v.Keywords {
			if i > 0 || len(v.Args) > 0 {
				sb.WriteString(", ")
			}
			if kw.Name == "" {
				sb.WriteString("**")
			} else {
				sb.WriteString(kw.Name)
				sb.WriteByte('=')
			}
			writeExpr(sb, kw.Value)
		}
		sb.WriteByte(')')
	case *BinOp:
		writeExpr(sb, v.Left)
		sb.WriteByte(' ')
		sb.WriteString(v.Op)
		sb.WriteByte(' ')
		writeExpr(sb, v.Right)
	case *UnaryOp:
		sb.WriteString(v.Op)
		writeExpr(sb, v.Operand)
	case *Starred:
		sb.WriteByte('*')
		writeExpr(sb, v.Value)
	}
}

func writeExprList(sb *strings.Builder, elts []Expr) {
	for i, e := range elts {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, e)
	}
}

func writeConstant(sb *strings.Builder, c *Constant) {
	switch c.Kind {
	case ConstString:
		sb.WriteString(quote(c.Str))
	case ConstNumber:
		sb.WriteString(c.Str)
	case ConstBool:
		if c.Bool {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case ConstNone:
		sb.WriteString("None")
	case ConstEllipsis:
		sb.WriteString("...")
	}
}

// quote renders a single-quoted Python string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// UnparseArguments renders a full parameter list without enclosing
// parentheses, e.g. "self, x: array, /, *, axis: int = 0, **kwargs".
func UnparseArguments(a Arguments) string {
	var parts []string

	positional := len(a.PosOnly) + len(a.Args)
	firstDefault := positional - len(a.Defaults)

	idx := 0
	renderPositional := func(arg Arg) string {
		s := renderArg(arg)
		if idx >= firstDefault {
			s += defaultSuffix(arg, a.Defaults[idx-firstDefault])
		}
		idx++
		return s
	}

	for _, arg := range a.PosOnly {
		parts = append(parts, renderPositional(arg))
	}
	if len(a.PosOnly) > 0 {
		parts = append(parts, "/")
	}
	for _, arg := range a.Args {
		parts = append(parts, renderPositional(arg))
	}

	if a.Vararg != nil {
		parts = append(parts, "*"+renderArg(*a.Vararg))
	} else if len(a.KwOnly) > 0 {
		parts = append(parts, "*")
	}
	for i, arg := range a.KwOnly {
		s := renderArg(arg)
		if i < len(a.KwDefaults) && a.KwDefaults[i] != nil {
			s += defaultSuffix(arg, a.KwDefaults[i])
		}
		parts = append(parts, s)
	}
	if a.Kwarg != nil {
		parts = append(parts, "**"+renderArg(*a.Kwarg))
	}

	return strings.Join(parts, ", ")
}

func renderArg(arg Arg) string {
	if arg.Annotation != nil {
		return arg.Name + ": " + Unparse(arg.Annotation)
	}
	return arg.Name
}

// defaultSuffix renders "=v" for a bare parameter and " = v" for an
// annotated one, matching CPython's unparser.
func defaultSuffix(arg Arg, def Expr) string {
	if arg.Annotation != nil {
		return " = " + Unparse(def)
	}
	return "=" + Unparse(def)
}

func renderTypeParams(params []TypeParam) string {
	if len(params) == 0 {
		return ""
	}
	var parts []string
	for _, p := range params {
		s := p.Name
		if p.Bound != nil {
			s += ": " + Unparse(p.Bound)
		}
		parts = append(parts, s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

const indentUnit = "    "

// Render serializes a module to Python source.
//
// Statement-position string constants (docstrings) render triple-quoted;
// everything else follows Unparse. The output is deterministic for a given
// tree.
func Render(m *Module) string {
	var sb strings.Builder
	writeBody(&sb, m.Body, 0)
	return sb.String()
}

func writeBody(sb *strings.Builder, body []Stmt, depth int) {
	for i, s := range body {
		if i > 0 && needsBlankLine(s) {
			sb.WriteByte('\n')
		}
		writeStmt(sb, s, depth)
	}
}

// needsBlankLine separates definitions from whatever precedes them.
func needsBlankLine(s Stmt) bool {
	switch s.(type) {
	case *FunctionDef, *ClassDef:
		return true
	default:
		return false
	}
}

func writeStmt(sb *strings.Builder, s Stmt, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch v := s.(type) {
	case *FunctionDef:
		for _, d := range v.Decorators {
			sb.WriteString(indent + "@" + Unparse(d) + "\n")
		}
		sb.WriteString(indent + "def " + v.Name + renderTypeParams(v.TypeParams))
		sb.WriteString("(" + UnparseArguments(v.Args) + ")")
		if v.Returns != nil {
			sb.WriteString(" -> " + Unparse(v.Returns))
		}
		sb.WriteString(":")
		if v.LineComment != "" {
			sb.WriteString("  # " + v.LineComment)
		}
		sb.WriteByte('\n')
		writeSuite(sb, v.Body, depth+1)
	case *ClassDef:
		for _, d := range v.Decorators {
			sb.WriteString(indent + "@" + Unparse(d) + "\n")
		}
		sb.WriteString(indent + "class " + v.Name + renderTypeParams(v.TypeParams))
		if len(v.Bases) > 0 {
			sb.WriteByte('(')
			for i, b := range v.Bases {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(Unparse(b))
			}
			sb.WriteByte(')')
		}
		sb.WriteString(":\n")
		writeSuite(sb, v.Body, depth+1)
	case *Assign:
		for _, t := range v.Targets {
			sb.WriteString(indent + Unparse(t) + " = ")
			indent = ""
		}
		sb.WriteString(Unparse(v.Value) + "\n")
	case *AnnAssign:
		sb.WriteString(indent + Unparse(v.Target) + ": " + Unparse(v.Annotation))
		if v.Value != nil {
			sb.WriteString(" = " + Unparse(v.Value))
		}
		sb.WriteByte('\n')
	case *ExprStmt:
		if c, ok := v.Value.(*Constant); ok && c.Kind == ConstString {
			writeDocstring(sb, c.Str, indent)
			return
		}
		sb.WriteString(indent + Unparse(v.Value) + "\n")
	case *Import:
		sb.WriteString(indent + "import " + renderAliases(v.Names) + "\n")
	case *ImportFrom:
		sb.WriteString(indent + "from " + strings.Repeat(".", v.Level) + v.Module +
			" import " + renderAliases(v.Names) + "\n")
	case *Return:
		if v.Value != nil {
			sb.WriteString(indent + "return " + Unparse(v.Value) + "\n")
		} else {
			sb.WriteString(indent + "return\n")
		}
	case *Pass:
		sb.WriteString(indent + "pass\n")
	case *BadStmt:
		// Input-only node; kept verbatim if it ever reaches a renderer.
		sb.WriteString(indent + v.Text + "\n")
	}
}

func writeSuite(sb *strings.Builder, body []Stmt, depth int) {
	if len(body) == 0 {
		sb.WriteString(strings.Repeat(indentUnit, depth) + "pass\n")
		return
	}
	writeBody(sb, body, depth)
}

func writeDocstring(sb *strings.Builder, s, indent string) {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"""`, `\"\"\"`)
	if strings.Contains(escaped, "\n") {
		// Body lines keep their source indentation; only the quotes are
		// placed at the statement's own indent. Trailing blank space before
		// the closing quotes is normalized away so re-parsing the output
		// round-trips.
		body := strings.TrimRight(escaped, " \t")
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		sb.WriteString(indent + `"""` + body)
		sb.WriteString(indent + `"""` + "\n")
		return
	}
	sb.WriteString(indent + `"""` + escaped + `"""` + "\n")
}

func renderAliases(names []Alias) string {
	var parts []string
	for _, n := range names {
		if n.AsName != "" {
			parts = append(parts, n.Name+" as "+n.AsName)
		} else {
			parts = append(parts, n.Name)
		}
	}
	return strings.Join(parts, ", ")
}
