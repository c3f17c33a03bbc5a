// Package expr implements the typed STL expression AST: a tagged union of
// Boolean and Numeric node variants. NewArith rejects bool operands and
// NewCmp rejects missing operands at construction time. The connective and
// temporal constructors (NewNot, NewImplies, NewIff, NewXor, NewNext,
// NewAlways, NewEventually, NewUntil) do no kind check: every Node
// satisfies Boolean, so a numeric operand is accepted there and only
// rejected (as TypeMismatch) when the formula is evaluated.
//
// Every node is a small struct implementing Accept, and a Visitor
// dispatches over concrete node types without reflection.
package expr

import (
	"math"

	"argus/argerrors"
	"argus/signal"
)

// Kind distinguishes a Boolean node from a Numeric one.
type Kind int

const (
	KindBoolean Kind = iota
	KindNumeric
)

// Numeric is implemented by every numeric AST node.
type Numeric interface {
	Node
	ElemType() signal.Kind
}

// Boolean is implemented by every Boolean AST node.
type Boolean interface {
	Node
}

// Node is the common interface implemented by every AST node, numeric or
// Boolean, so generic tree walks (e.g. collecting free variables) don't need
// to special-case the two kinds.
type Node interface {
	Kind() Kind
	Accept(v Visitor) interface{}
}

// Interval is an optional time window [a, b] with 0 <= a <= b; b may be
// +Inf to mean unbounded. The implicit [0, +Inf) is the Unbounded value.
type Interval struct {
	A, B float64
}

// Unbounded is the implicit interval used when none is given in the
// concrete syntax.
var Unbounded = Interval{A: 0, B: math.Inf(1)}

func NewInterval(a, b float64) (Interval, error) {
	if a < 0 {
		return Interval{}, argerrors.New(argerrors.TypeMismatch, "interval lower bound %v must be >= 0", a)
	}
	if b < a {
		return Interval{}, argerrors.New(argerrors.TypeMismatch, "interval upper bound %v must be >= lower bound %v", b, a)
	}
	return Interval{A: a, B: b}, nil
}

func (iv Interval) Unbounded() bool { return math.IsInf(iv.B, 1) }

// ---- Numeric node variants ----

type ConstInt struct{ Value int64 }

func (*ConstInt) Kind() Kind                   { return KindNumeric }
func (*ConstInt) ElemType() signal.Kind        { return signal.KindInt }
func (n *ConstInt) Accept(v Visitor) interface{} { return v.VisitConstInt(n) }

type ConstUInt struct{ Value uint64 }

func (*ConstUInt) Kind() Kind                    { return KindNumeric }
func (*ConstUInt) ElemType() signal.Kind         { return signal.KindUInt }
func (n *ConstUInt) Accept(v Visitor) interface{} { return v.VisitConstUInt(n) }

type ConstFloat struct{ Value float64 }

func (*ConstFloat) Kind() Kind                    { return KindNumeric }
func (*ConstFloat) ElemType() signal.Kind         { return signal.KindFloat }
func (n *ConstFloat) Accept(v Visitor) interface{} { return v.VisitConstFloat(n) }

type VarNum struct {
	Name string
	Elem signal.Kind // one of KindInt, KindUInt, KindFloat
}

func (*VarNum) Kind() Kind                    { return KindNumeric }
func (n *VarNum) ElemType() signal.Kind       { return n.Elem }
func (n *VarNum) Accept(v Visitor) interface{} { return v.VisitVarNum(n) }

// NewVarNum validates that elem is a numeric kind.
func NewVarNum(name string, elem signal.Kind) (*VarNum, error) {
	if elem == signal.KindBool {
		return nil, argerrors.New(argerrors.TypeMismatch, "numeric variable %q cannot have bool element type", name)
	}
	return &VarNum{Name: name, Elem: elem}, nil
}

type Neg struct {
	Operand Numeric
	Elem    signal.Kind
}

func (*Neg) Kind() Kind                    { return KindNumeric }
func (n *Neg) ElemType() signal.Kind       { return n.Elem }
func (n *Neg) Accept(v Visitor) interface{} { return v.VisitNeg(n) }

func NewNeg(operand Numeric) *Neg {
	return &Neg{Operand: operand, Elem: operand.ElemType()}
}

// ArithOp names a binary numeric operator.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
)

type Arith struct {
	Op          ArithOp
	Left, Right Numeric
	Elem        signal.Kind
}

func (*Arith) Kind() Kind                    { return KindNumeric }
func (n *Arith) ElemType() signal.Kind       { return n.Elem }
func (n *Arith) Accept(v Visitor) interface{} { return v.VisitArith(n) }

// NewArith type-checks and builds a binary arithmetic node, computing the
// promoted element type: Float dominates, mixed Int/UInt promotes
// to Int, otherwise the shared type is preserved.
func NewArith(op ArithOp, left, right Numeric) (*Arith, error) {
	elem, err := promote(left.ElemType(), right.ElemType())
	if err != nil {
		return nil, err
	}
	return &Arith{Op: op, Left: left, Right: right, Elem: elem}, nil
}

func promote(a, b signal.Kind) (signal.Kind, error) {
	if a == signal.KindBool || b == signal.KindBool {
		return 0, argerrors.New(argerrors.TypeMismatch, "arithmetic operands must be numeric, got bool")
	}
	if a == signal.KindFloat || b == signal.KindFloat {
		return signal.KindFloat, nil
	}
	if a != b {
		return signal.KindInt, nil
	}
	return a, nil
}

// ---- Boolean node variants ----

type ConstBool struct{ Value bool }

func (*ConstBool) Kind() Kind                    { return KindBoolean }
func (n *ConstBool) Accept(v Visitor) interface{} { return v.VisitConstBool(n) }

type VarBool struct{ Name string }

func (*VarBool) Kind() Kind                    { return KindBoolean }
func (n *VarBool) Accept(v Visitor) interface{} { return v.VisitVarBool(n) }

// CmpOp names a binary comparison operator.
type CmpOp int

const (
	OpLt CmpOp = iota
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

type Cmp struct {
	Op          CmpOp
	Left, Right Numeric
}

func (*Cmp) Kind() Kind                    { return KindBoolean }
func (n *Cmp) Accept(v Visitor) interface{} { return v.VisitCmp(n) }

func NewCmp(op CmpOp, left, right Numeric) (*Cmp, error) {
	if left == nil || right == nil {
		return nil, argerrors.New(argerrors.TypeMismatch, "comparison requires two numeric operands")
	}
	return &Cmp{Op: op, Left: left, Right: right}, nil
}

type Not struct{ Operand Boolean }

func (*Not) Kind() Kind                    { return KindBoolean }
func (n *Not) Accept(v Visitor) interface{} { return v.VisitNot(n) }

func NewNot(operand Boolean) *Not { return &Not{Operand: operand} }

type And struct{ Operands []Boolean }

func (*And) Kind() Kind                    { return KindBoolean }
func (n *And) Accept(v Visitor) interface{} { return v.VisitAnd(n) }

func NewAnd(operands ...Boolean) (*And, error) {
	if len(operands) < 2 {
		return nil, argerrors.New(argerrors.TypeMismatch, "And requires at least 2 operands, got %d", len(operands))
	}
	return &And{Operands: operands}, nil
}

type Or struct{ Operands []Boolean }

func (*Or) Kind() Kind                    { return KindBoolean }
func (n *Or) Accept(v Visitor) interface{} { return v.VisitOr(n) }

func NewOr(operands ...Boolean) (*Or, error) {
	if len(operands) < 2 {
		return nil, argerrors.New(argerrors.TypeMismatch, "Or requires at least 2 operands, got %d", len(operands))
	}
	return &Or{Operands: operands}, nil
}

type Implies struct{ Left, Right Boolean }

func (*Implies) Kind() Kind                    { return KindBoolean }
func (n *Implies) Accept(v Visitor) interface{} { return v.VisitImplies(n) }

func NewImplies(left, right Boolean) *Implies { return &Implies{Left: left, Right: right} }

type Iff struct{ Left, Right Boolean }

func (*Iff) Kind() Kind                    { return KindBoolean }
func (n *Iff) Accept(v Visitor) interface{} { return v.VisitIff(n) }

func NewIff(left, right Boolean) *Iff { return &Iff{Left: left, Right: right} }

type Xor struct{ Left, Right Boolean }

func (*Xor) Kind() Kind                    { return KindBoolean }
func (n *Xor) Accept(v Visitor) interface{} { return v.VisitXor(n) }

func NewXor(left, right Boolean) *Xor { return &Xor{Left: left, Right: right} }

type Next struct{ Operand Boolean }

func (*Next) Kind() Kind                    { return KindBoolean }
func (n *Next) Accept(v Visitor) interface{} { return v.VisitNext(n) }

func NewNext(operand Boolean) *Next { return &Next{Operand: operand} }

type Always struct {
	Interval Interval
	Operand  Boolean
}

func (*Always) Kind() Kind                    { return KindBoolean }
func (n *Always) Accept(v Visitor) interface{} { return v.VisitAlways(n) }

func NewAlways(iv Interval, operand Boolean) *Always { return &Always{Interval: iv, Operand: operand} }

type Eventually struct {
	Interval Interval
	Operand  Boolean
}

func (*Eventually) Kind() Kind                    { return KindBoolean }
func (n *Eventually) Accept(v Visitor) interface{} { return v.VisitEventually(n) }

func NewEventually(iv Interval, operand Boolean) *Eventually {
	return &Eventually{Interval: iv, Operand: operand}
}

type Until struct {
	Interval    Interval
	Left, Right Boolean
}

func (*Until) Kind() Kind                    { return KindBoolean }
func (n *Until) Accept(v Visitor) interface{} { return v.VisitUntil(n) }

func NewUntil(iv Interval, left, right Boolean) *Until {
	return &Until{Interval: iv, Left: left, Right: right}
}

// Visitor dispatches over every concrete node variant, mirroring the
// node's own Accept method.
type Visitor interface {
	VisitConstInt(n *ConstInt) interface{}
	VisitConstUInt(n *ConstUInt) interface{}
	VisitConstFloat(n *ConstFloat) interface{}
	VisitVarNum(n *VarNum) interface{}
	VisitNeg(n *Neg) interface{}
	VisitArith(n *Arith) interface{}

	VisitConstBool(n *ConstBool) interface{}
	VisitVarBool(n *VarBool) interface{}
	VisitCmp(n *Cmp) interface{}
	VisitNot(n *Not) interface{}
	VisitAnd(n *And) interface{}
	VisitOr(n *Or) interface{}
	VisitImplies(n *Implies) interface{}
	VisitIff(n *Iff) interface{}
	VisitXor(n *Xor) interface{}
	VisitNext(n *Next) interface{}
	VisitAlways(n *Always) interface{}
	VisitEventually(n *Eventually) interface{}
	VisitUntil(n *Until) interface{}
}
