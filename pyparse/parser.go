package pyparse

import (
	"strings"

	"github.com/dataapis/protogen/errors"
	"github.com/dataapis/protogen/pyast"
)

// Parse parses one stub file into a module. name is the module name (the
// file stem, by convention).
//
// Lexical errors fail the parse. Statement shapes outside the stub dialect
// do not: they are preserved as pyast.BadStmt nodes for the engine to
// diagnose and drop.
func Parse(name string, src []byte) (*pyast.Module, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, errors.Wrapf(err, "module %s", name)
	}
	p := &parser{toks: toks}
	m := &pyast.Module{Name: name}
	for !p.at(tokEOF) {
		m.Body = append(m.Body, p.statement())
	}
	return m, nil
}

type parser struct {
	toks []token
	pos  int
}

// parseFail aborts the current statement; the caller recovers it into a
// BadStmt.
type parseFail struct {
	line int
}

func (p *parser) cur() token        { return p.toks[p.pos] }
func (p *parser) at(k tokenKind) bool { return p.toks[p.pos].kind == k }

func (p *parser) atOp(text string) bool {
	t := p.cur()
	return t.kind == tokOp && t.text == text
}

func (p *parser) atName(text string) bool {
	t := p.cur()
	return t.kind == tokName && t.text == text
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expectOp(text string) {
	if !p.atOp(text) {
		panic(parseFail{line: p.cur().line})
	}
	p.pos++
}

func (p *parser) expectName() string {
	if !p.at(tokName) {
		panic(parseFail{line: p.cur().line})
	}
	return p.next().text
}

func (p *parser) expectNewline() {
	// Tolerate trailing semicolons on simple statements.
	for p.atOp(";") {
		p.pos++
	}
	if !p.at(tokNewline) {
		panic(parseFail{line: p.cur().line})
	}
	p.pos++
}

// statement parses one statement, falling back to BadStmt on any shape the
// dialect does not cover.
func (p *parser) statement() (stmt pyast.Stmt) {
	start := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseFail); !ok {
				panic(r)
			}
			stmt = p.recoverBad(start)
		}
	}()

	var decorators []pyast.Expr
	for p.atOp("@") {
		p.pos++
		decorators = append(decorators, p.expression())
		p.expectNewline()
	}

	switch {
	case p.atName("def"):
		return p.functionDef(decorators)
	case p.atName("class"):
		return p.classDef(decorators)
	case len(decorators) > 0:
		// Decorators on anything else are outside the dialect.
		panic(parseFail{line: p.cur().line})
	case p.atName("import"):
		return p.importStmt()
	case p.atName("from"):
		return p.importFrom()
	case p.atName("return"):
		p.pos++
		ret := &pyast.Return{}
		if !p.at(tokNewline) {
			ret.Value = p.expressionList()
		}
		p.expectNewline()
		return ret
	case p.atName("pass"):
		p.pos++
		p.expectNewline()
		return &pyast.Pass{}
	default:
		return p.simpleStmt()
	}
}

// simpleStmt parses assignment, annotated assignment, or a bare expression.
func (p *parser) simpleStmt() pyast.Stmt {
	first := p.expressionList()

	if p.atOp(":") {
		p.pos++
		ann := &pyast.AnnAssign{Target: first, Annotation: p.expression()}
		if p.atOp("=") {
			p.pos++
			ann.Value = p.expressionList()
		}
		p.expectNewline()
		return ann
	}

	if p.atOp("=") {
		targets := []pyast.Expr{first}
		var value pyast.Expr
		for p.atOp("=") {
			p.pos++
			value = p.expressionList()
			if p.atOp("=") {
				targets = append(targets, value)
			}
		}
		p.expectNewline()
		return &pyast.Assign{Targets: targets, Value: value}
	}

	p.expectNewline()
	return &pyast.ExprStmt{Value: first}
}

func (p *parser) importStmt() pyast.Stmt {
	p.pos++ // import
	imp := &pyast.Import{}
	for {
		imp.Names = append(imp.Names, p.importAlias())
		if !p.atOp(",") {
			break
		}
		p.pos++
	}
	p.expectNewline()
	return imp
}

func (p *parser) importFrom() pyast.Stmt {
	p.pos++ // from
	imp := &pyast.ImportFrom{}
	for p.atOp(".") {
		imp.Level++
		p.pos++
	}
	if p.at(tokName) {
		imp.Module = p.dottedName()
	}
	if !p.atName("import") {
		panic(parseFail{line: p.cur().line})
	}
	p.pos++
	if p.atOp("*") {
		p.pos++
		imp.Names = []pyast.Alias{{Name: "*"}}
		p.expectNewline()
		return imp
	}
	parenthesized := p.atOp("(")
	if parenthesized {
		p.pos++
	}
	for {
		imp.Names = append(imp.Names, p.importAlias())
		if !p.atOp(",") {
			break
		}
		p.pos++
		if parenthesized && p.atOp(")") {
			break // trailing comma
		}
	}
	if parenthesized {
		p.expectOp(")")
	}
	p.expectNewline()
	return imp
}

func (p *parser) importAlias() pyast.Alias {
	a := pyast.Alias{Name: p.dottedName()}
	if p.atName("as") {
		p.pos++
		a.AsName = p.expectName()
	}
	return a
}

func (p *parser) dottedName() string {
	name := p.expectName()
	for p.atOp(".") && p.toks[p.pos+1].kind == tokName {
		p.pos++
		name += "." + p.expectName()
	}
	return name
}

func (p *parser) functionDef(decorators []pyast.Expr) pyast.Stmt {
	p.pos++ // def
	fn := &pyast.FunctionDef{
		Name:       p.expectName(),
		Decorators: decorators,
	}
	if p.atOp("[") {
		fn.TypeParams = p.typeParams()
	}
	p.expectOp("(")
	fn.Args = p.parameters()
	p.expectOp(")")
	if p.atOp("->") {
		p.pos++
		fn.Returns = p.expression()
	}
	p.expectOp(":")
	fn.Body = p.suite()
	return fn
}

func (p *parser) classDef(decorators []pyast.Expr) pyast.Stmt {
	p.pos++ // class
	cls := &pyast.ClassDef{
		Name:       p.expectName(),
		Decorators: decorators,
	}
	if p.atOp("[") {
		cls.TypeParams = p.typeParams()
	}
	if p.atOp("(") {
		p.pos++
		for !p.atOp(")") {
			base := p.expression()
			if p.atOp("=") {
				// Class keywords (metaclass=...) are outside the surface we
				// model; consume and drop.
				p.pos++
				p.expression()
			} else {
				cls.Bases = append(cls.Bases, base)
			}
			if !p.atOp(",") {
				break
			}
			p.pos++
		}
		p.expectOp(")")
	}
	p.expectOp(":")
	cls.Body = p.suite()
	return cls
}

func (p *parser) typeParams() []pyast.TypeParam {
	p.expectOp("[")
	var params []pyast.TypeParam
	for !p.atOp("]") {
		tp := pyast.TypeParam{Name: p.expectName()}
		if p.atOp(":") {
			p.pos++
			tp.Bound = p.expression()
		}
		params = append(params, tp)
		if !p.atOp(",") {
			break
		}
		p.pos++
	}
	p.expectOp("]")
	return params
}

// parameters parses a full parameter list up to the closing parenthesis.
func (p *parser) parameters() pyast.Arguments {
	var args pyast.Arguments
	seenStar := false

	for !p.atOp(")") {
		switch {
		case p.atOp("/"):
			p.pos++
			// Everything so far was positional-only.
			args.PosOnly = args.Args
			args.Args = nil
		case p.atOp("*"):
			p.pos++
			seenStar = true
			if p.at(tokName) {
				arg := p.parameter()
				args.Vararg = &arg
			}
		case p.atOp("**"):
			p.pos++
			arg := p.parameter()
			args.Kwarg = &arg
		default:
			arg := p.parameter()
			var def pyast.Expr
			if p.atOp("=") {
				p.pos++
				def = p.expression()
			}
			if seenStar {
				args.KwOnly = append(args.KwOnly, arg)
				args.KwDefaults = append(args.KwDefaults, def)
			} else {
				args.Args = append(args.Args, arg)
				if def != nil {
					args.Defaults = append(args.Defaults, def)
				}
			}
		}
		if !p.atOp(",") {
			break
		}
		p.pos++
	}
	return args
}

func (p *parser) parameter() pyast.Arg {
	arg := pyast.Arg{Name: p.expectName()}
	if p.atOp(":") {
		p.pos++
		arg.Annotation = p.expression()
	}
	return arg
}

// suite parses an indented block, or inline simple statements after the
// colon (def f(): ...).
func (p *parser) suite() []pyast.Stmt {
	if !p.at(tokNewline) {
		var body []pyast.Stmt
		for {
			body = append(body, p.inlineSimple())
			if !p.atOp(";") {
				break
			}
			p.pos++
			if p.at(tokNewline) {
				break
			}
		}
		p.expectNewline()
		return body
	}

	p.pos++ // newline
	if !p.at(tokIndent) {
		panic(parseFail{line: p.cur().line})
	}
	p.pos++
	var body []pyast.Stmt
	for !p.at(tokDedent) && !p.at(tokEOF) {
		body = append(body, p.statement())
	}
	if p.at(tokDedent) {
		p.pos++
	}
	return body
}

// inlineSimple parses one simple statement without consuming the newline.
func (p *parser) inlineSimple() pyast.Stmt {
	switch {
	case p.atName("pass"):
		p.pos++
		return &pyast.Pass{}
	case p.atName("return"):
		p.pos++
		ret := &pyast.Return{}
		if !p.at(tokNewline) && !p.atOp(";") {
			ret.Value = p.expressionList()
		}
		return ret
	default:
		return &pyast.ExprStmt{Value: p.expressionList()}
	}
}

// recoverBad consumes the rest of the failed statement, including an
// indented suite if the header line opened one, and preserves its text.
func (p *parser) recoverBad(start int) pyast.Stmt {
	if p.pos < start {
		p.pos = start
	}
	line := p.toks[start].line
	endedWithColon := false
	for !p.at(tokEOF) && !p.at(tokNewline) {
		endedWithColon = p.atOp(":")
		p.pos++
	}
	if p.at(tokNewline) {
		p.pos++
	}
	if endedWithColon && p.at(tokIndent) {
		depth := 0
		for !p.at(tokEOF) {
			if p.at(tokIndent) {
				depth++
			} else if p.at(tokDedent) {
				depth--
				if depth == 0 {
					p.pos++
					break
				}
			}
			p.pos++
		}
	}
	var words []string
	for _, t := range p.toks[start:p.pos] {
		if t.kind == tokNewline || t.kind == tokIndent || t.kind == tokDedent {
			continue
		}
		words = append(words, t.text)
	}
	return &pyast.BadStmt{Text: strings.Join(words, " "), Line: line}
}
