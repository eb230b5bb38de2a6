package pyast

// CloneExpr returns a deep copy of an expression. Transformers copy before
// they build so an output tree never aliases the caller's input tree.
func CloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *Name:
		c := *v
		return &c
	case *Constant:
		c := *v
		return &c
	case *Attribute:
		return &Attribute{Value: CloneExpr(v.Value), Attr: v.Attr}
	case *Subscript:
		return &Subscript{Value: CloneExpr(v.Value), Index: CloneExpr(v.Index)}
	case *Tuple:
		return &Tuple{Elts: cloneExprList(v.Elts)}
	case *List:
		return &List{Elts: cloneExprList(v.Elts)}
	case *Dict:
		return &Dict{Keys: cloneExprList(v.Keys), Values: cloneExprList(v.Values)}
	case *Call:
		c := &Call{Func: CloneExpr(v.Func), Args: cloneExprList(v.Args)}
		for _, kw := range v.Keywords {
			c.Keywords = append(c.Keywords, Keyword{Name: kw.Name, Value: CloneExpr(kw.Value)})
		}
		return c
	case *BinOp:
		return &BinOp{Left: CloneExpr(v.Left), Op: v.Op, Right: CloneExpr(v.Right)}
	case *UnaryOp:
		return &UnaryOp{Op: v.Op, Operand: CloneExpr(v.Operand)}
	case *Starred:
		return &Starred{Value: CloneExpr(v.Value)}
	default:
		return e
	}
}

// CloneStmt returns a deep copy of a statement.
func CloneStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	switch v := s.(type) {
	case *FunctionDef:
		return &FunctionDef{
			Name:        v.Name,
			Decorators:  cloneExprList(v.Decorators),
			Args:        CloneArguments(v.Args),
			Returns:     CloneExpr(v.Returns),
			Body:        CloneBody(v.Body),
			TypeParams:  CloneTypeParams(v.TypeParams),
			LineComment: v.LineComment,
		}
	case *ClassDef:
		return &ClassDef{
			Name:       v.Name,
			Decorators: cloneExprList(v.Decorators),
			Bases:      cloneExprList(v.Bases),
			Body:       CloneBody(v.Body),
			TypeParams: CloneTypeParams(v.TypeParams),
		}
	case *Assign:
		return &Assign{Targets: cloneExprList(v.Targets), Value: CloneExpr(v.Value)}
	case *AnnAssign:
		return &AnnAssign{
			Target:     CloneExpr(v.Target),
			Annotation: CloneExpr(v.Annotation),
			Value:      CloneExpr(v.Value),
		}
	case *ExprStmt:
		return &ExprStmt{Value: CloneExpr(v.Value)}
	case *Import:
		return &Import{Names: append([]Alias(nil), v.Names...)}
	case *ImportFrom:
		return &ImportFrom{Module: v.Module, Names: append([]Alias(nil), v.Names...), Level: v.Level}
	case *Return:
		return &Return{Value: CloneExpr(v.Value)}
	case *Pass:
		return &Pass{}
	case *BadStmt:
		c := *v
		return &c
	default:
		return s
	}
}

// CloneBody deep-copies a statement list.
func CloneBody(body []Stmt) []Stmt {
	if body == nil {
		return nil
	}
	out := make([]Stmt, len(body))
	for i, s := range body {
		out[i] = CloneStmt(s)
	}
	return out
}

// CloneArguments deep-copies a parameter list.
func CloneArguments(a Arguments) Arguments {
	return Arguments{
		PosOnly:    cloneArgList(a.PosOnly),
		Args:       cloneArgList(a.Args),
		Vararg:     cloneArg(a.Vararg),
		KwOnly:     cloneArgList(a.KwOnly),
		KwDefaults: cloneExprList(a.KwDefaults),
		Kwarg:      cloneArg(a.Kwarg),
		Defaults:   cloneExprList(a.Defaults),
	}
}

// CloneTypeParams deep-copies a generic-parameter list.
func CloneTypeParams(params []TypeParam) []TypeParam {
	if params == nil {
		return nil
	}
	out := make([]TypeParam, len(params))
	for i, p := range params {
		out[i] = TypeParam{Name: p.Name, Bound: CloneExpr(p.Bound)}
	}
	return out
}

func cloneExprList(elts []Expr) []Expr {
	if elts == nil {
		return nil
	}
	out := make([]Expr, len(elts))
	for i, e := range elts {
		out[i] = CloneExpr(e)
	}
	return out
}

func cloneArgList(args []Arg) []Arg {
	if args == nil {
		return nil
	}
	out := make([]Arg, len(args))
	for i, a := range args {
		out[i] = Arg{Name: a.Name, Annotation: CloneExpr(a.Annotation)}
	}
	return out
}

func cloneArg(a *Arg) *Arg {
	if a == nil {
		return nil
	}
	return &Arg{Name: a.Name, Annotation: CloneExpr(a.Annotation)}
}
