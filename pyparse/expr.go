package pyparse

import (
	"github.com/dataapis/protogen/pyast"
)

// Binary operator precedence. The annotation language is mostly unions, but
// arithmetic shows up in default values.
var binaryPrec = map[string]int{
	"|":  1,
	"^":  2,
	"&":  3,
	"<<": 4, ">>": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "//": 6, "%": 6, "@": 6,
	"**": 8,
}

// expressionList parses one or more comma-separated expressions, producing a
// Tuple for more than one (or a trailing comma).
func (p *parser) expressionList() pyast.Expr {
	first := p.expression()
	if !p.atOp(",") {
		return first
	}
	elts := []pyast.Expr{first}
	for p.atOp(",") {
		p.pos++
		if p.atExprTerminator() {
			break
		}
		elts = append(elts, p.expression())
	}
	return &pyast.Tuple{Elts: elts}
}

func (p *parser) atExprTerminator() bool {
	t := p.cur()
	switch t.kind {
	case tokNewline, tokEOF:
		return true
	case tokOp:
		switch t.text {
		case ")", "]", "}", "=", ":", ";":
			return true
		}
	}
	return false
}

func (p *parser) expression() pyast.Expr {
	return p.binary(1)
}

func (p *parser) binary(minPrec int) pyast.Expr {
	left := p.unary()
	for {
		t := p.cur()
		if t.kind != tokOp {
			return left
		}
		prec, ok := binaryPrec[t.text]
		if !ok || prec < minPrec {
			return left
		}
		p.pos++
		next := prec + 1
		if t.text == "**" { // right-associative
			next = prec
		}
		left = &pyast.BinOp{Left: left, Op: t.text, Right: p.binary(next)}
	}
}

func (p *parser) unary() pyast.Expr {
	if t := p.cur(); t.kind == tokOp {
		switch t.text {
		case "-", "+", "~":
			p.pos++
			return &pyast.UnaryOp{Op: t.text, Operand: p.unary()}
		}
	}
	return p.postfix()
}

func (p *parser) postfix() pyast.Expr {
	e := p.atom()
	for {
		switch {
		case p.atOp("."):
			p.pos++
			e = &pyast.Attribute{Value: e, Attr: p.expectName()}
		case p.atOp("("):
			e = p.call(e)
		case p.atOp("["):
			p.pos++
			e = &pyast.Subscript{Value: e, Index: p.subscriptIndex()}
			p.expectOp("]")
		default:
			return e
		}
	}
}

func (p *parser) call(fn pyast.Expr) pyast.Expr {
	p.expectOp("(")
	c := &pyast.Call{Func: fn}
	for !p.atOp(")") {
		switch {
		case p.atOp("**"):
			p.pos++
			c.Keywords = append(c.Keywords, pyast.Keyword{Value: p.expression()})
		case p.atOp("*"):
			p.pos++
			c.Args = append(c.Args, &pyast.Starred{Value: p.expression()})
		case p.at(tokName) && p.toks[p.pos+1].kind == tokOp && p.toks[p.pos+1].text == "=":
			name := p.next().text
			p.pos++ // =
			c.Keywords = append(c.Keywords, pyast.Keyword{Name: name, Value: p.expression()})
		default:
			c.Args = append(c.Args, p.expression())
		}
		if !p.atOp(",") {
			break
		}
		p.pos++
	}
	p.expectOp(")")
	return c
}

// subscriptIndex parses the contents of value[...]: a single expression or
// an unparenthesized tuple. Slice syntax is outside the dialect.
func (p *parser) subscriptIndex() pyast.Expr {
	if p.atOp("]") {
		panic(parseFail{line: p.cur().line})
	}
	first := p.expression()
	if !p.atOp(",") {
		return first
	}
	elts := []pyast.Expr{first}
	for p.atOp(",") {
		p.pos++
		if p.atOp("]") {
			break
		}
		elts = append(elts, p.expression())
	}
	return &pyast.Tuple{Elts: elts}
}

func (p *parser) atom() pyast.Expr {
	t := p.cur()
	switch t.kind {
	case tokName:
		p.pos++
		switch t.text {
		case "True":
			return &pyast.Constant{Kind: pyast.ConstBool, Bool: true}
		case "False":
			return &pyast.Constant{Kind: pyast.ConstBool}
		case "None":
			return &pyast.Constant{Kind: pyast.ConstNone}
		case "lambda", "not", "if", "for", "await", "yield":
			// Expression forms outside the dialect.
			panic(parseFail{line: t.line})
		}
		return pyast.NewName(t.text)
	case tokNumber:
		p.pos++
		return &pyast.Constant{Kind: pyast.ConstNumber, Str: t.text}
	case tokString:
		p.pos++
		s := t.text
		// Adjacent string literals concatenate.
		for p.at(tokString) {
			s += p.next().text
		}
		return &pyast.Constant{Kind: pyast.ConstString, Str: s}
	case tokOp:
		switch t.text {
		case "...":
			p.pos++
			return pyast.EllipsisLit()
		case "(":
			p.pos++
			if p.atOp(")") {
				p.pos++
				return &pyast.Tuple{}
			}
			inner := p.expressionList()
			p.expectOp(")")
			return inner
		case "[":
			p.pos++
			lst := &pyast.List{}
			for !p.atOp("]") {
				lst.Elts = append(lst.Elts, p.expression())
				if !p.atOp(",") {
					break
				}
				p.pos++
			}
			p.expectOp("]")
			return lst
		case "{":
			p.pos++
			d := &pyast.Dict{}
			for !p.atOp("}") {
				key := p.expression()
				p.expectOp(":")
				d.Keys = append(d.Keys, key)
				d.Values = append(d.Values, p.expression())
				if !p.atOp(",") {
					break
				}
				p.pos++
			}
			p.expectOp("}")
			return d
		}
	}
	panic(parseFail{line: t.line})
}
