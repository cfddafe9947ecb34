// expr implements expression parsing by precedence climbing: one routine
// binds operators tighter or looser from a fixed table instead of one
// grammar rule per tier. BETWEEN sits between the predicate tier and AND as
// a ternary form whose inner AND is consumed by the BETWEEN rule itself.
package sqlparse

// Binding powers, loosest first. Postfix qualification and indexing bind
// tightest; atoms sit above every operator.
const (
	precOr = iota + 1
	precAnd
	precBetween
	precPredicate // IS, LIKE, IN
	precComparison
	precAddSub
	precMulDiv
	precUnary
	precPostfix
	precAtom
)

type binaryOp struct {
	kind NodeKind
	prec int
}

var binaryOps = map[string]binaryOp{
	"=":  {NodeEq, precComparison},
	"<>": {NodeNotEq, precComparison},
	"!=": {NodeNotEq, precComparison},
	"<":  {NodeLt, precComparison},
	">":  {NodeGt, precComparison},
	"<=": {NodeLe, precComparison},
	">=": {NodeGe, precComparison},
	"+":  {NodeAdd, precAddSub},
	"-":  {NodeSubtract, precAddSub},
	"*":  {NodeMultiply, precMulDiv},
	"/":  {NodeDivide, precMulDiv},
	"%":  {NodeModulo, precMulDiv},
}

// parseExpr parses an expression whose operators all bind at least as
// tightly as min. Binary operators are left associative, implemented by
// recursing with prec+1 on the right operand.
func (p *parser) parseExpr(min int) (*SqlNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.tok.Kind == TokenKeyword {
			done, next, err := p.parseKeywordOp(left, min)
			if err != nil {
				return nil, err
			}
			if done {
				return next, nil
			}
			left = next
			continue
		}
		if p.tok.Kind == TokenOperator {
			if op, ok := binaryOps[p.tok.Value]; ok && op.prec >= min {
				p.advance()
				right, err := p.parseExpr(op.prec + 1)
				if err != nil {
					return nil, err
				}
				left = NewBranch(op.kind, left, right)
				continue
			}
		}
		return left, nil
	}
}

// parseKeywordOp handles the keyword operators AND, OR, IS, LIKE, IN, and
// BETWEEN. done is true when the current keyword does not extend the
// expression at this binding power.
func (p *parser) parseKeywordOp(left *SqlNode, min int) (done bool, _ *SqlNode, _ error) {
	switch p.tok.Value {
	case "OR":
		if precOr < min {
			return true, left, nil
		}
		p.advance()
		right, err := p.parseExpr(precOr + 1)
		if err != nil {
			return false, nil, err
		}
		return false, NewBranch(NodeOr, left, right), nil
	case "AND":
		if precAnd < min {
			return true, left, nil
		}
		p.advance()
		right, err := p.parseExpr(precAnd + 1)
		if err != nil {
			return false, nil, err
		}
		return false, NewBranch(NodeAnd, left, right), nil
	case "BETWEEN":
		if precBetween < min {
			return true, left, nil
		}
		p.advance()
		low, err := p.parseExpr(precBetween + 1)
		if err != nil {
			return false, nil, err
		}
		if err := p.expectKw("AND"); err != nil {
			return false, nil, err
		}
		high, err := p.parseExpr(precBetween + 1)
		if err != nil {
			return false, nil, err
		}
		return false, NewBranch(NodeBetween, left, low, high), nil
	case "IS":
		if precPredicate < min {
			return true, left, nil
		}
		p.advance()
		kind := NodeIsNull
		if p.eatKw("NOT") {
			kind = NodeIsNotNull
		}
		if err := p.expectKw("NULL"); err != nil {
			return false, nil, err
		}
		return false, NewBranch(kind, left), nil
	case "LIKE":
		if precPredicate < min {
			return true, left, nil
		}
		p.advance()
		pattern, err := p.parseExpr(precPredicate + 1)
		if err != nil {
			return false, nil, err
		}
		return false, NewBranch(NodeLike, left, pattern), nil
	case "IN":
		if precPredicate < min {
			return true, left, nil
		}
		p.advance()
		if err := p.expectOp("("); err != nil {
			return false, nil, err
		}
		list := NewBranch(NodeExprList)
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return false, nil, err
			}
			list.Append(e)
			if !p.eatOp(",") {
				break
			}
		}
		if err := p.expectOp(")"); err != nil {
			return false, nil, err
		}
		return false, NewBranch(NodeIn, left, list), nil
	}
	return true, left, nil
}

func (p *parser) parseUnary() (*SqlNode, error) {
	if p.eatOp("-") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewBranch(NodeNegate, operand), nil
	}
	return p.parsePostfix()
}

// parsePostfix applies qualification and indexing, the tightest tier.
func (p *parser) parsePostfix() (*SqlNode, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		if p.eatOp(".") {
			id, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			n = NewBranch(NodeDot, n, id)
			continue
		}
		if p.eatOp("[") {
			idx, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			if err := p.expectOp("]"); err != nil {
				return nil, err
			}
			n = NewBranch(NodeIndex, n, idx)
			continue
		}
		return n, nil
	}
}

// parsePrimary parses atoms: literals, identifiers, function calls, NULL,
// and parenthesized expressions.
func (p *parser) parsePrimary() (*SqlNode, error) {
	t := p.tok
	switch t.Kind {
	case TokenIdentifier:
		p.advance()
		name := NewLeaf(NodeIdentifier, t.Value)
		if p.isOp("(") {
			return p.parseCallArgs(name)
		}
		return name, nil
	case TokenQuotedIdentifier:
		p.advance()
		return NewLeaf(NodeQuotedIdentifier, t.Value), nil
	case TokenString:
		p.advance()
		return NewLeaf(NodeStringLit, t.Value), nil
	case TokenBitString:
		p.advance()
		return NewLeaf(NodeBitStringLit, t.Value), nil
	case TokenHexString:
		p.advance()
		return NewLeaf(NodeHexStringLit, t.Value), nil
	case TokenInteger:
		p.advance()
		return NewLeaf(NodeIntegerLit, t.Value), nil
	case TokenNumeric:
		p.advance()
		return NewLeaf(NodeNumericLit, t.Value), nil
	case TokenKeyword:
		if t.Value == "NULL" {
			p.advance()
			return NewBranch(NodeNull), nil
		}
	case TokenOperator:
		if t.Value == "(" {
			p.advance()
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, p.errorf(t, "expression expected")
}

// parseCallArgs parses the argument list of name(...). A bare * is the
// count-star argument form.
func (p *parser) parseCallArgs(name *SqlNode) (*SqlNode, error) {
	p.advance() // (
	call := NewBranch(NodeCall, name)
	if p.eatOp("*") {
		call.Append(NewBranch(NodeAllColumns))
	} else if !p.isOp(")") {
		for {
			e, err := p.parseExpr(precOr)
			if err != nil {
				return nil, err
			}
			call.Append(e)
			if !p.eatOp(",") {
				break
			}
		}
	}
	if err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return call, nil
}
