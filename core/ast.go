package core

import (
	"fmt"
	"strconv"
	"strings"
)

type NodeKind string

const (
	KindLet        NodeKind = "let"
	KindFunction   NodeKind = "function"
	KindParams     NodeKind = "params"
	KindParam      NodeKind = "param"
	KindType       NodeKind = "type"
	KindReturnType NodeKind = "return_type"
	KindIdentifier NodeKind = "identifier"
	KindLiteral    NodeKind = "literal"
	KindString     NodeKind = "string"
	KindCall       NodeKind = "call"
	KindIf         NodeKind = "if"
	KindComparison NodeKind = "comparison_op"
	KindBinary     NodeKind = "binary_op"
	KindMatch      NodeKind = "match"
	KindCase       NodeKind = "case"
	KindWildcard   NodeKind = "pattern-wildcard"
)

// Node is implemented only by the node types in this file.
type Node interface {
	String() string
	Kind() NodeKind
	Pos() Position
	astNode()
}

type LetNode struct {
	Name  string
	Type  *TypeNode
	Value Node
	Tok   Token
}

func (n *LetNode) String() string {
	if n.Type.Tag == "" {
		return fmt.Sprintf("let %s = %s", n.Name, n.Value)
	}
	return fmt.Sprintf("let %s: %s = %s", n.Name, n.Type, n.Value)
}

func (n *LetNode) Kind() NodeKind { return KindLet }
func (n *LetNode) Pos() Position  { return n.Tok.Pos }
func (n *LetNode) astNode()       {}

type FunctionNode struct {
	Name       string
	Params     *ParamsNode
	ReturnType *TypeNode
	Body       Node
	Tok        Token
}

func (n *FunctionNode) String() string {
	ret := ""
	if n.ReturnType.Tag != "" {
		ret = " -> " + n.ReturnType.Tag
	}
	return fmt.Sprintf("fn %s%s%s = %s", n.Name, n.Params, ret, n.Body)
}

func (n *FunctionNode) Kind() NodeKind { return KindFunction }
func (n *FunctionNode) Pos() Position  { return n.Tok.Pos }
func (n *FunctionNode) astNode()       {}

type ParamsNode struct {
	Params []*ParamNode
	Tok    Token
}

func (n *ParamsNode) String() string {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ", ") + ")"
}

func (n *ParamsNode) Kind() NodeKind { return KindParams }
func (n *ParamsNode) Pos() Position  { return n.Tok.Pos }
func (n *ParamsNode) astNode()       {}

type ParamNode struct {
	Name string
	Type *TypeNode
	Tok  Token
}

func (n *ParamNode) String() string {
	if n.Type.Tag == "" {
		return n.Name
	}
	return n.Name + ": " + n.Type.Tag
}

func (n *ParamNode) Kind() NodeKind { return KindParam }
func (n *ParamNode) Pos() Position  { return n.Tok.Pos }
func (n *ParamNode) astNode()       {}

// TypeNode is a declared type tag. An empty Tag means no annotation was
// written. It reports KindReturnType when it annotates a function result.
type TypeNode struct {
	Tag    string
	Return bool
	Tok    Token
}

func (n *TypeNode) String() string {
	return n.Tag
}

func (n *TypeNode) Kind() NodeKind {
	if n.Return {
		return KindReturnType
	}
	return KindType
}

func (n *TypeNode) Pos() Position { return n.Tok.Pos }
func (n *TypeNode) astNode()      {}

type IdentifierNode struct {
	Name string
	Tok  Token
}

func (n *IdentifierNode) String() string { return n.Name }
func (n *IdentifierNode) Kind() NodeKind { return KindIdentifier }
func (n *IdentifierNode) Pos() Position  { return n.Tok.Pos }
func (n *IdentifierNode) astNode()       {}

// LiteralNode holds an IntValue or a BoolValue.
type LiteralNode struct {
	Value Value
	Tok   Token
}

func (n *LiteralNode) String() string { return n.Value.String() }
func (n *LiteralNode) Kind() NodeKind { return KindLiteral }
func (n *LiteralNode) Pos() Position  { return n.Tok.Pos }
func (n *LiteralNode) astNode()       {}

type StringNode struct {
	Payload string
	Tok     Token
}

func (n *StringNode) String() string { return strconv.Quote(n.Payload) }
func (n *StringNode) Kind() NodeKind { return KindString }
func (n *StringNode) Pos() Position  { return n.Tok.Pos }
func (n *StringNode) astNode()       {}

type CallNode struct {
	Name string
	Args []Node
	Tok  Token
}

func (n *CallNode) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

func (n *CallNode) Kind() NodeKind { return KindCall }
func (n *CallNode) Pos() Position  { return n.Tok.Pos }
func (n *CallNode) astNode()       {}

type IfNode struct {
	Cond Node
	Then Node
	Else Node
	Tok  Token
}

func (n *IfNode) String() string {
	return fmt.Sprintf("if %s then %s else %s", n.Cond, n.Then, n.Else)
}

func (n *IfNode) Kind() NodeKind { return KindIf }
func (n *IfNode) Pos() Position  { return n.Tok.Pos }
func (n *IfNode) astNode()       {}

type ComparisonNode struct {
	Op    string
	Left  Node
	Right Node
	Tok   Token
}

func (n *ComparisonNode) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

func (n *ComparisonNode) Kind() NodeKind { return KindComparison }
func (n *ComparisonNode) Pos() Position  { return n.Tok.Pos }
func (n *ComparisonNode) astNode()       {}

type BinaryNode struct {
	Op    string
	Left  Node
	Right Node
	Tok   Token
}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

func (n *BinaryNode) Kind() NodeKind { return KindBinary }
func (n *BinaryNode) Pos() Position  { return n.Tok.Pos }
func (n *BinaryNode) astNode()       {}

type MatchNode struct {
	Subject Node
	Cases   []*CaseNode
	Tok     Token
}

func (n *MatchNode) String() string {
	cases := make([]string, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = c.String()
	}
	return fmt.Sprintf("match %s { %s }", n.Subject, strings.Join(cases, ", "))
}

func (n *MatchNode) Kind() NodeKind { return KindMatch }
func (n *MatchNode) Pos() Position  { return n.Tok.Pos }
func (n *MatchNode) astNode()       {}

// CaseNode pairs a pattern (literal, string, wildcard or identifier) with
// its result expression.
type CaseNode struct {
	Pattern Node
	Result  Node
	Tok     Token
}

func (n *CaseNode) String() string {
	return n.Pattern.String() + " -> " + n.Result.String()
}

func (n *CaseNode) Kind() NodeKind { return KindCase }
func (n *CaseNode) Pos() Position  { return n.Tok.Pos }
func (n *CaseNode) astNode()       {}

type WildcardNode struct {
	Tok Token
}

func (n *WildcardNode) String() string { return "_" }
func (n *WildcardNode) Kind() NodeKind { return KindWildcard }
func (n *WildcardNode) Pos() Position  { return n.Tok.Pos }
func (n *WildcardNode) astNode()       {}
