package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders a Node back into STL concrete syntax. Used by the CLI's
// fmt subcommand to canonicalize a formula: parse then Sprint drops the
// source's own parens, wraps every compound operand in parens, and
// normalizes whitespace and interval units.
func Sprint(n Node) string {
	p := &printer{}
	n.Accept(p)
	return p.sb.String()
}

type printer struct {
	sb strings.Builder
}

func (p *printer) write(s string) { p.sb.WriteString(s) }

func (p *printer) sub(n Node) string {
	inner := &printer{}
	n.Accept(inner)
	return inner.sb.String()
}

func (p *printer) VisitConstInt(n *ConstInt) interface{} {
	p.write(strconv.FormatInt(n.Value, 10))
	return nil
}

func (p *printer) VisitConstUInt(n *ConstUInt) interface{} {
	p.write(strconv.FormatUint(n.Value, 10))
	return nil
}

func (p *printer) VisitConstFloat(n *ConstFloat) interface{} {
	p.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
	return nil
}

func (p *printer) VisitVarNum(n *VarNum) interface{} {
	p.write(n.Name)
	return nil
}

func (p *printer) VisitNeg(n *Neg) interface{} {
	p.write("-" + parenthesize(n.Operand, p.sub(n.Operand)))
	return nil
}

func (p *printer) VisitArith(n *Arith) interface{} {
	ops := [...]string{"+", "-", "*", "/"}
	p.write(fmt.Sprintf("%s %s %s",
		parenthesize(n.Left, p.sub(n.Left)), ops[n.Op], parenthesize(n.Right, p.sub(n.Right))))
	return nil
}

func (p *printer) VisitConstBool(n *ConstBool) interface{} {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
	return nil
}

func (p *printer) VisitVarBool(n *VarBool) interface{} {
	p.write(n.Name)
	return nil
}

func (p *printer) VisitCmp(n *Cmp) interface{} {
	ops := [...]string{"<", "<=", ">", ">=", "==", "!="}
	p.write(fmt.Sprintf("%s %s %s", p.sub(n.Left), ops[n.Op], p.sub(n.Right)))
	return nil
}

func (p *printer) VisitNot(n *Not) interface{} {
	p.write("!" + parenthesize(n.Operand, p.sub(n.Operand)))
	return nil
}

func (p *printer) VisitAnd(n *And) interface{} {
	p.write(joinOperands(n.Operands, " && "))
	return nil
}

func (p *printer) VisitOr(n *Or) interface{} {
	p.write(joinOperands(n.Operands, " || "))
	return nil
}

func (p *printer) VisitImplies(n *Implies) interface{} {
	p.write(fmt.Sprintf("%s -> %s", parenthesize(n.Left, p.sub(n.Left)), parenthesize(n.Right, p.sub(n.Right))))
	return nil
}

func (p *printer) VisitIff(n *Iff) interface{} {
	p.write(fmt.Sprintf("%s <=> %s", parenthesize(n.Left, p.sub(n.Left)), parenthesize(n.Right, p.sub(n.Right))))
	return nil
}

func (p *printer) VisitXor(n *Xor) interface{} {
	p.write(fmt.Sprintf("%s ^ %s", parenthesize(n.Left, p.sub(n.Left)), parenthesize(n.Right, p.sub(n.Right))))
	return nil
}

func (p *printer) VisitNext(n *Next) interface{} {
	p.write("X " + parenthesize(n.Operand, p.sub(n.Operand)))
	return nil
}

func (p *printer) VisitAlways(n *Always) interface{} {
	p.write(fmt.Sprintf("G%s %s", intervalSuffix(n.Interval), parenthesize(n.Operand, p.sub(n.Operand))))
	return nil
}

func (p *printer) VisitEventually(n *Eventually) interface{} {
	p.write(fmt.Sprintf("F%s %s", intervalSuffix(n.Interval), parenthesize(n.Operand, p.sub(n.Operand))))
	return nil
}

func (p *printer) VisitUntil(n *Until) interface{} {
	p.write(fmt.Sprintf("%s U%s %s",
		parenthesize(n.Left, p.sub(n.Left)), intervalSuffix(n.Interval), parenthesize(n.Right, p.sub(n.Right))))
	return nil
}

func intervalSuffix(iv Interval) string {
	if !iv.Unbounded() || iv.A != 0 {
		lo := int64(iv.A * 1000)
		if iv.Unbounded() {
			return fmt.Sprintf("[%d,]", lo)
		}
		return fmt.Sprintf("[%d,%d]", lo, int64(iv.B*1000))
	}
	return ""
}

// parenthesize wraps rendered with parens unless node is a leaf or a
// prefix form (Neg, Not, Next), so the printed form re-parses to the same
// tree regardless of the ladder's precedence.
func parenthesize(node Node, rendered string) string {
	switch node.(type) {
	case *ConstInt, *ConstUInt, *ConstFloat, *VarNum, *ConstBool, *VarBool, *Neg, *Not, *Next:
		return rendered
	default:
		return "(" + rendered + ")"
	}
}

func joinOperands(operands []Boolean, sep string) string {
	parts := make([]string, len(operands))
	for i, op := range operands {
		inner := &printer{}
		op.Accept(inner)
		parts[i] = parenthesize(op, inner.sb.String())
	}
	return strings.Join(parts, sep)
}
