// Package pyast models the Python syntax-tree subset used by the array-API
// stub corpus.
//
// Nodes are plain value types behind small marker interfaces (Node, Stmt,
// Expr). The shapes mirror CPython's ast module closely enough that the
// transformation rules in package gen read like their upstream counterparts,
// but only the constructs that actually occur in stub files exist here.
package pyast

// Node is implemented by every syntax-tree node.
type Node interface {
	node()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmt()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	expr()
}

// Module is one parsed stub file: a name and its ordered top-level statements.
type Module struct {
	Name string
	Body []Stmt
}

// TypeParam is one PEP 695 generic-parameter entry on a class or function.
type TypeParam struct {
	Name  string
	Bound Expr // nil when unbounded
}

// Alias is one name in an import statement.
type Alias struct {
	Name   string
	AsName string // "" when not aliased
}

// Arg is one formal parameter.
type Arg struct {
	Name       string
	Annotation Expr // nil when unannotated
}

// Arguments is the full parameter list of a function, in CPython's layout.
//
// Defaults is right-aligned against PosOnly+Args. KwDefaults is parallel to
// KwOnly with nil entries for parameters without a default.
type Arguments struct {
	PosOnly    []Arg
	Args       []Arg
	Vararg     *Arg
	KwOnly     []Arg
	KwDefaults []Expr
	Kwarg      *Arg
	Defaults   []Expr
}

// FunctionDef is a def statement.
type FunctionDef struct {
	Name       string
	Decorators []Expr
	Args       Arguments
	Returns    Expr // nil when unannotated
	Body       []Stmt
	TypeParams []TypeParam

	// LineComment is rendered after the def line's colon. Used for
	// suppression markers such as "type: ignore[override]".
	LineComment string
}

// ClassDef is a class statement.
type ClassDef struct {
	Name       string
	Decorators []Expr
	Bases      []Expr
	Body       []Stmt
	TypeParams []TypeParam
}

// Assign is an unannotated assignment, possibly with multiple targets.
type Assign struct {
	Targets []Expr
	Value   Expr
}

// AnnAssign is an annotated assignment or a bare annotated declaration.
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr // nil for a bare declaration
}

// ExprStmt is an expression in statement position (docstrings, ellipsis).
type ExprStmt struct {
	Value Expr
}

// Import is an import statement.
type Import struct {
	Names []Alias
}

// ImportFrom is a from-import statement.
type ImportFrom struct {
	Module string
	Names  []Alias
	Level  int
}

// Return is a return statement.
type Return struct {
	Value Expr // nil for a bare return
}

// Pass is a pass statement.
type Pass struct{}

// BadStmt preserves an input statement the parser did not recognize, so the
// engine can report and drop it instead of aborting.
type BadStmt struct {
	Text string
	Line int
}

func (*FunctionDef) node() {}
func (*ClassDef) node()    {}
func (*Assign) node()      {}
func (*AnnAssign) node()   {}
func (*ExprStmt) node()    {}
func (*Import) node()      {}
func (*ImportFrom) node()  {}
func (*Return) node()      {}
func (*Pass) node()        {}
func (*BadStmt) node()     {}

func (*FunctionDef) stmt() {}
func (*ClassDef) stmt()    {}
func (*Assign) stmt()      {}
func (*AnnAssign) stmt()   {}
func (*ExprStmt) stmt()    {}
func (*Import) stmt()      {}
func (*ImportFrom) stmt()  {}
func (*Return) stmt()      {}
func (*Pass) stmt()        {}
func (*BadStmt) stmt()     {}

// ConstKind discriminates Constant values.
type ConstKind int

const (
	ConstString ConstKind = iota
	ConstNumber
	ConstBool
	ConstNone
	ConstEllipsis
)

// Constant is a literal. Numbers keep their raw source text so rendering
// round-trips exactly.
type Constant struct {
	Kind ConstKind
	Str  string // string value, or raw number text
	Bool bool
}

// Name is an identifier reference.
type Name struct {
	ID string
}

// Attribute is dotted access, value.Attr.
type Attribute struct {
	Value Expr
	Attr  string
}

// Subscript is value[index]. A Tuple index renders without parentheses.
type Subscript struct {
	Value Expr
	Index Expr
}

// Tuple is a tuple display.
type Tuple struct {
	Elts []Expr
}

// List is a list display.
type List struct {
	Elts []Expr
}

// Dict is a dict display. Keys and Values are parallel.
type Dict struct {
	Keys   []Expr
	Values []Expr
}

// Keyword is one keyword argument in a call. An empty Name means **value.
type Keyword struct {
	Name  string
	Value Expr
}

// Call is a call expression.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

// BinOp is a binary operation; in annotations this is almost always the
// union operator "|".
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

// UnaryOp is a unary operation such as a negative literal.
type UnaryOp struct {
	Op      string
	Operand Expr
}

// Starred is *value in a call or annotation position.
type Starred struct {
	Value Expr
}

func (*Constant) node()  {}
func (*Name) node()      {}
func (*Attribute) node() {}
func (*Subscript) node() {}
func (*Tuple) node()     {}
func (*List) node()      {}
func (*Dict) node()      {}
func (*Call) node()      {}
func (*BinOp) node()     {}
func (*UnaryOp) node()   {}
func (*Starred) node()   {}

func (*Constant) expr()  {}
func (*Name) expr()      {}
func (*Attribute) expr() {}
func (*Subscript) expr() {}
func (*Tuple) expr()     {}
func (*List) expr()      {}
func (*Dict) expr()      {}
func (*Call) expr()      {}
func (*BinOp) expr()     {}
func (*UnaryOp) expr()   {}
func (*Starred) expr()   {}

// NewName returns a Name expression for id.
func NewName(id string) *Name {
	return &Name{ID: id}
}

// Str returns a string Constant.
func Str(s string) *Constant {
	return &Constant{Kind: ConstString, Str: s}
}

// EllipsisLit returns an Ellipsis Constant.
func EllipsisLit() *Constant {
	return &Constant{Kind: ConstEllipsis}
}

// EllipsisStmt returns a bare "..." statement, the unimplemented-body marker.
func EllipsisStmt() Stmt {
	return &ExprStmt{Value: EllipsisLit()}
}

// IsEllipsisStmt reports whether s is a bare "..." statement.
func IsEllipsisStmt(s Stmt) bool {
	es, ok := s.(*ExprStmt)
	if !ok {
		return false
	}
	c, ok := es.Value.(*Constant)
	return ok && c.Kind == ConstEllipsis
}

// StringConst returns the string value of s when it is a bare string
// expression statement.
func StringConst(s Stmt) (string, bool) {
	es, ok := s.(*ExprStmt)
	if !ok {
		return "", false
	}
	c, ok := es.Value.(*Constant)
	if !ok || c.Kind != ConstString {
		return "", false
	}
	return c.Str, true
}

// Docstring returns the docstring of a statement body: the leading bare
// string expression, if any.
func Docstring(body []Stmt) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	return StringConst(body[0])
}
