package pyast

// WalkExprs visits every expression in the module, parents before children.
// Visitors may mutate the nodes they receive; the tree structure itself is
// not changed by the walk.
func WalkExprs(m *Module, visit func(Expr)) {
	walkStmts(m.Body, visit)
}

// WalkTypeParams visits every generic-parameter entry in the module,
// including those on nested definitions.
func WalkTypeParams(m *Module, visit func(*TypeParam)) {
	var stmts func([]Stmt)
	stmts = func(body []Stmt) {
		for _, s := range body {
			switch v := s.(type) {
			case *FunctionDef:
				for i := range v.TypeParams {
					visit(&v.TypeParams[i])
				}
				stmts(v.Body)
			case *ClassDef:
				for i := range v.TypeParams {
					visit(&v.TypeParams[i])
				}
				stmts(v.Body)
			}
		}
	}
	stmts(m.Body)
}

func walkStmts(body []Stmt, visit func(Expr)) {
	for _, s := range body {
		walkStmt(s, visit)
	}
}

func walkStmt(s Stmt, visit func(Expr)) {
	switch v := s.(type) {
	case *FunctionDef:
		walkExprList(v.Decorators, visit)
		walkArguments(&v.Args, visit)
		if v.Returns != nil {
			walkExpr(v.Returns, visit)
		}
		for i := range v.TypeParams {
			if v.TypeParams[i].Bound != nil {
				walkExpr(v.TypeParams[i].Bound, visit)
			}
		}
		walkStmts(v.Body, visit)
	case *ClassDef:
		walkExprList(v.Decorators, visit)
		walkExprList(v.Bases, visit)
		for i := range v.TypeParams {
			if v.TypeParams[i].Bound != nil {
				walkExpr(v.TypeParams[i].Bound, visit)
			}
		}
		walkStmts(v.Body, visit)
	case *Assign:
		walkExprList(v.Targets, visit)
		walkExpr(v.Value, visit)
	case *AnnAssign:
		walkExpr(v.Target, visit)
		walkExpr(v.Annotation, visit)
		if v.Value != nil {
			walkExpr(v.Value, visit)
		}
	case *ExprStmt:
		walkExpr(v.Value, visit)
	case *Return:
		if v.Value != nil {
			walkExpr(v.Value, visit)
		}
	}
}

func walkArguments(a *Arguments, visit func(Expr)) {
	walkArgList(a.PosOnly, visit)
	walkArgList(a.Args, visit)
	if a.Vararg != nil && a.Vararg.Annotation != nil {
		walkExpr(a.Vararg.Annotation, visit)
	}
	walkArgList(a.KwOnly, visit)
	for _, d := range a.KwDefaults {
		if d != nil {
			walkExpr(d, visit)
		}
	}
	if a.Kwarg != nil && a.Kwarg.Annotation != nil {
		walkExpr(a.Kwarg.Annotation, visit)
	}
	walkExprList(a.Defaults, visit)
}

func walkArgList(args []Arg, visit func(Expr)) {
	for i := range args {
		if args[i].Annotation != nil {
			walkExpr(args[i].Annotation, visit)
		}
	}
}

func walkExprList(elts []Expr, visit func(Expr)) {
	for _, e := range elts {
		walkExpr(e, visit)
	}
}

func walkExpr(e Expr, visit func(Expr)) {
	visit(e)
	switch v := e.(type) {
	case *Attribute:
		walkExpr(v.Value, visit)
	case *Subscript:
		walkExpr(v.Value, visit)
		walkExpr(v.Index, visit)
	case *Tuple:
		walkExprList(v.Elts, visit)
	case *List:
		walkExprList(v.Elts, visit)
	case *Dict:
		walkExprList(v.Keys, visit)
		walkExprList(v.Values, visit)
	case *Call:
		walkExpr(v.Func, visit)
		walkExprList(v.Args, visit)
		for _, kw := range v.Keywords {
			walkExpr(kw.Value, visit)
		}
	case *BinOp:
		walkExpr(v.Left, visit)
		walkExpr(v.Right, visit)
	case *UnaryOp:
		walkExpr(v.Operand, visit)
	case *Starred:
		walkExpr(v.Value, visit)
	}
}
