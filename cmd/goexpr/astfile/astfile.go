// Package astfile decodes a minimal JSON encoding of an expression AST
// (internal/ast), used by cmd/goexpr as a developer-convenience "front
// end" in place of the lexer/parser spec.md §1 excludes from the core.
// This is explicitly not the external parser the spec describes: it is
// a test/demo harness, grounded the way the teacher's
// cmd/dwscript/cmd/parse.go exposes an internal pipeline stage as a CLI
// verb.
//
// Shape (one JSON object per node):
//
//	{"kind":"literal","type":"Int","value":1}
//	{"kind":"identifier","name":"pi"}
//	{"kind":"unary","symbol":"-","operand":{...}}
//	{"kind":"binary","symbol":"+","lhs":{...},"rhs":{...}}
//	{"kind":"function","name":"Len","args":[{...},...],"identifierForm":false}
//	{"kind":"conditional","cond":{...},"then":{...},"else":{...}}
package astfile

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/goexpr/internal/ast"
	"github.com/cwbudde/goexpr/internal/value"
)

// rawNode mirrors every possible field across node kinds; fields not
// relevant to Kind are simply left zero.
type rawNode struct {
	Kind   string          `json:"kind"`
	Type   string          `json:"type"`
	Value  json.RawMessage `json:"value"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Operand *rawNode        `json:"operand"`
	LHS     *rawNode        `json:"lhs"`
	RHS     *rawNode        `json:"rhs"`
	Args    []*rawNode      `json:"args"`
	IdentifierForm bool     `json:"identifierForm"`
	Cond *rawNode `json:"cond"`
	Then *rawNode `json:"then"`
	Else *rawNode `json:"else"`
}

// Decode parses data as a single JSON-encoded AST node.
func Decode(data []byte) (ast.Node, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("astfile: %w", err)
	}
	return build(&raw)
}

func build(n *rawNode) (ast.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("astfile: missing node")
	}
	switch n.Kind {
	case "literal":
		v, err := buildLiteral(n.Type, n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Value: v}, nil

	case "identifier":
		if n.Name == "" {
			return nil, fmt.Errorf("astfile: identifier node missing name")
		}
		return &ast.Identifier{Name: n.Name}, nil

	case "unary":
		operand, err := build(n.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Symbol: n.Symbol, Operand: operand}, nil

	case "binary":
		lhs, err := build(n.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := build(n.RHS)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Symbol: n.Symbol, LHS: lhs, RHS: rhs}, nil

	case "function":
		args := make([]ast.Node, len(n.Args))
		for i, a := range n.Args {
			arg, err := build(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &ast.Function{Name: n.Name, Args: args, WasIdentifierForm: n.IdentifierForm}, nil

	case "conditional":
		cond, err := build(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := build(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := build(n.Else)
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Cond: cond, Then: then, Else: els}, nil

	default:
		return nil, fmt.Errorf("astfile: unknown node kind %q", n.Kind)
	}
}

func buildLiteral(typ string, raw json.RawMessage) (value.Value, error) {
	switch typ {
	case "Bool":
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return value.Value{}, fmt.Errorf("astfile: literal Bool: %w", err)
		}
		return value.Boolean(b), nil
	case "Int":
		var i int64
		if err := json.Unmarshal(raw, &i); err != nil {
			return value.Value{}, fmt.Errorf("astfile: literal Int: %w", err)
		}
		return value.Integer(i), nil
	case "Float":
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return value.Value{}, fmt.Errorf("astfile: literal Float: %w", err)
		}
		return value.Floating(f), nil
	case "String":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return value.Value{}, fmt.Errorf("astfile: literal String: %w", err)
		}
		return value.Str(s), nil
	default:
		return value.Value{}, fmt.Errorf("astfile: unknown literal type %q", typ)
	}
}
