package pyast

import (
	"strings"
	"testing"
)

func TestUnparseExpressions(t *testing.T) {
	union := &BinOp{Left: NewName("int"), Op: "|", Right: &Constant{Kind: ConstNone}}

	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"name", NewName("array"), "array"},
		{"attribute", &Attribute{Value: NewName("np"), Attr: "dtype"}, "np.dtype"},
		{"union", union, "int | None"},
		{"string", Str("it's"), `'it\'s'`},
		{"number", &Constant{Kind: ConstNumber, Str: "2.718281828459045"}, "2.718281828459045"},
		{"bools", &Tuple{Elts: []Expr{
			&Constant{Kind: ConstBool, Bool: true},
			&Constant{Kind: ConstBool},
		}}, "(True, False)"},
		{"ellipsis", EllipsisLit(), "..."},
		{"negative", &UnaryOp{Op: "-", Operand: &Constant{Kind: ConstNumber, Str: "1"}}, "-1"},
		{"list", &List{Elts: []Expr{Str("a"), Str("b")}}, "['a', 'b']"},
		{"dict", &Dict{Keys: []Expr{Str("k")}, Values: []Expr{NewName("v")}}, "{'k': v}"},
		{"starred", &Starred{Value: NewName("args")}, "*args"},
		{"call", &Call{
			Func:     NewName("TypeVar"),
			Args:     []Expr{Str("array")},
			Keywords: []Keyword{{Name: "bound", Value: NewName("Array")}},
		}, "TypeVar('array', bound=Array)"},
		{"subscript single", &Subscript{
			Value: NewName("tuple"),
			Index: NewName("int"),
		}, "tuple[int]"},
		{"subscript tuple", &Subscript{
			Value: NewName("tuple"),
			Index: &Tuple{Elts: []Expr{NewName("int"), EllipsisLit()}},
		}, "tuple[int, ...]"},
		{"subscript one-element tuple keeps trailing comma", &Subscript{
			Value: NewName("add"),
			Index: &Tuple{Elts: []Expr{NewName("array")}},
		}, "add[array,]"},
		{"subscript empty tuple", &Subscript{
			Value: NewName("add"),
			Index: &Tuple{},
		}, "add[()]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Unparse(tc.expr); got != tc.want {
				t.Errorf("Unparse() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUnparseArguments(t *testing.T) {
	cases := []struct {
		name string
		args Arguments
		want string
	}{
		{
			name: "positional only with self",
			args: Arguments{
				PosOnly: []Arg{{Name: "self"}},
				Args: []Arg{
					{Name: "x1", Annotation: NewName("array")},
					{Name: "x2", Annotation: NewName("array")},
				},
			},
			want: "self, /, x1: array, x2: array",
		},
		{
			name: "annotated default uses spaced equals",
			args: Arguments{
				Args:     []Arg{{Name: "axis", Annotation: NewName("int")}},
				Defaults: []Expr{&Constant{Kind: ConstNumber, Str: "0"}},
			},
			want: "axis: int = 0",
		},
		{
			name: "bare default uses tight equals",
			args: Arguments{
				Args:     []Arg{{Name: "axis"}},
				Defaults: []Expr{&Constant{Kind: ConstNone}},
			},
			want: "axis=None",
		},
		{
			name: "keyword only behind star",
			args: Arguments{
				Args:       []Arg{{Name: "x", Annotation: NewName("array")}},
				KwOnly:     []Arg{{Name: "copy", Annotation: NewName("bool")}},
				KwDefaults: []Expr{&Constant{Kind: ConstBool, Bool: true}},
			},
			want: "x: array, *, copy: bool = True",
		},
		{
			name: "varargs and kwargs",
			args: Arguments{
				Vararg: &Arg{Name: "arrays", Annotation: NewName("array")},
				Kwarg:  &Arg{Name: "kwargs"},
			},
			want: "*arrays: array, **kwargs",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := UnparseArguments(tc.args); got != tc.want {
				t.Errorf("UnparseArguments() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderFunction(t *testing.T) {
	fn := &FunctionDef{
		Name:       "__call__",
		Decorators: []Expr{NewName("abstractmethod")},
		Args: Arguments{
			PosOnly: []Arg{{Name: "self"}},
			Args:    []Arg{{Name: "x", Annotation: NewName("array")}},
		},
		Returns: NewName("array"),
		Body:    []Stmt{EllipsisStmt()},
	}
	cls := &ClassDef{
		Name:       "abs",
		Decorators: []Expr{NewName("runtime_checkable")},
		Bases:      []Expr{NewName("Protocol")},
		TypeParams: []TypeParam{{Name: "array", Bound: NewName("Array")}},
		Body:       []Stmt{fn},
	}

	got := Render(&Module{Body: []Stmt{cls}})
	want := strings.Join([]string{
		"@runtime_checkable",
		"class abs[array: Array](Protocol):",
		"    @abstractmethod",
		"    def __call__(self, /, x: array) -> array:",
		"        ...",
		"",
	}, "\n")
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderLineComment(t *testing.T) {
	fn := &FunctionDef{
		Name: "__eq__",
		Args: Arguments{
			Args: []Arg{{Name: "self"}, {Name: "other", Annotation: NewName("object")}},
		},
		Returns:     NewName("bool"),
		Body:        []Stmt{EllipsisStmt()},
		LineComment: "type: ignore[override]",
	}
	got := Render(&Module{Body: []Stmt{fn}})
	if !strings.Contains(got, "def __eq__(self, other: object) -> bool:  # type: ignore[override]") {
		t.Errorf("missing suppression comment in:\n%s", got)
	}
}

func TestRenderDocstrings(t *testing.T) {
	m := &Module{Body: []Stmt{
		&ExprStmt{Value: Str("Auto generated Protocol classes (Do not edit)")},
		&AnnAssign{Target: NewName("pi"), Annotation: NewName("float")},
		&ExprStmt{Value: Str("The ratio of a circle's circumference.\n\nSee also tau.")},
	}}
	got := Render(m)
	if !strings.Contains(got, `"""Auto generated Protocol classes (Do not edit)"""`) {
		t.Errorf("single-line docstring not triple-quoted:\n%s", got)
	}
	if !strings.Contains(got, "\"\"\"The ratio of a circle's circumference.\n\nSee also tau.\n\"\"\"") {
		t.Errorf("multiline docstring rendered wrong:\n%s", got)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := &FunctionDef{
		Name: "add",
		Args: Arguments{Args: []Arg{{Name: "x", Annotation: NewName("array")}}},
	}
	cloned := CloneStmt(orig).(*FunctionDef)
	cloned.Args.Args[0].Annotation.(*Name).ID = "changed"
	if orig.Args.Args[0].Annotation.(*Name).ID != "array" {
		t.Error("clone aliases the original annotation")
	}
}
