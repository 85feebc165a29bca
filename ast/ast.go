package ast

// ArrayAssignIntrinsic is the callee name the parser emits for `a[i] = v`.
// It is never resolved through the function tables.
const ArrayAssignIntrinsic = "__array_assign"

type Statement interface {
	isStatement()
}

type LetStmt struct {
	Name  string
	Value Expr
}

func (LetStmt) isStatement() {}

// AssignStmt is the top-level `name = expr;` form.
type AssignStmt struct {
	Name  string
	Value Expr
}

func (AssignStmt) isStatement() {}

// FuncDef is a named function. Origin is the stem of the file it was parsed
// from. Entry functions (`fn main`) carry an empty Name.
type FuncDef struct {
	Origin  string
	IsEntry bool
	Name    string
	Params  []string
	Body    []Statement
}

func (FuncDef) isStatement() {}

type ReturnStmt struct {
	Value Expr
}

func (ReturnStmt) isStatement() {}

// IfStmt holds an optional else body; `else if` is an Else holding a single
// IfStmt.
type IfStmt struct {
	Cond Expr
	Then []Statement
	Else []Statement
}

func (IfStmt) isStatement() {}

type WhileStmt struct {
	Cond Expr
	Body []Statement
}

func (WhileStmt) isStatement() {}

// ForStmt clauses are nil when omitted.
type ForStmt struct {
	Init   Statement
	Cond   Expr
	Update Statement
	Body   []Statement
}

func (ForStmt) isStatement() {}

type ExprStmt struct {
	Expr Expr
}

func (ExprStmt) isStatement() {}

type BlockStmt struct {
	Body []Statement
}

func (BlockStmt) isStatement() {}

type PrintStmt struct {
	Value Expr
}

func (PrintStmt) isStatement() {}

type ImportStmt struct {
	Module string
}

func (ImportStmt) isStatement() {}

type TryStmt struct {
	Body  []Statement
	Catch []Statement
}

func (TryStmt) isStatement() {}

type Expr interface {
	isExpr()
}

type IntLit struct {
	Value int64
}

func (IntLit) isExpr() {}

type FloatLit struct {
	Value float64
}

func (FloatLit) isExpr() {}

type BoolLit struct {
	Value bool
}

func (BoolLit) isExpr() {}

type StringLit struct {
	Value string
}

func (StringLit) isExpr() {}

type Ident struct {
	Name string
}

func (Ident) isExpr() {}

type BinaryOp string

const (
	OpAdd          BinaryOp = "+"
	OpSub          BinaryOp = "-"
	OpMul          BinaryOp = "*"
	OpDiv          BinaryOp = "/"
	OpMod          BinaryOp = "%"
	OpEqual        BinaryOp = "=="
	OpNotEqual     BinaryOp = "!="
	OpLess         BinaryOp = "<"
	OpGreater      BinaryOp = ">"
	OpLessEqual    BinaryOp = "<="
	OpGreaterEqual BinaryOp = ">="
	OpAnd          BinaryOp = "&&"
	OpOr           BinaryOp = "||"
)

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}

type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (UnaryExpr) isExpr() {}

type CallExpr struct {
	Callee Expr
	Args   []Expr
}

func (CallExpr) isExpr() {}

type ArrayLit struct {
	Elems []Expr
}

func (ArrayLit) isExpr() {}

type IndexExpr struct {
	Target Expr
	Index  Expr
}

func (IndexExpr) isExpr() {}

type ClosureExpr struct {
	Params []string
	Body   []Statement
}

func (ClosureExpr) isExpr() {}

// AssignExpr is `name = expr` nested inside a larger expression. It yields
// the assigned value.
type AssignExpr struct {
	Name  string
	Value Expr
}

func (AssignExpr) isExpr() {}
