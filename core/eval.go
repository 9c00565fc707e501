package core

import (
	"fmt"
	"log/slog"
	"math"
)

// Interpreter evaluates trees against one root scope. Bindings made by
// top-level statements persist across calls to Interpret. An Interpreter
// must not be used from several goroutines at once.
type Interpreter struct {
	context *Context
	root    *Scope
	log     *slog.Logger
	depth   int
}

func NewInterpreter(context *Context) *Interpreter {
	return &Interpreter{
		context: context,
		root:    NewScope(),
		log:     context.Config.logger(),
	}
}

func (in *Interpreter) Scope() *Scope {
	return in.root
}

// Interpret evaluates nodes in order and returns one result per node. The
// first error stops evaluation and no results are returned.
func (in *Interpreter) Interpret(nodes []Node) ([]Value, error) {
	results := make([]Value, 0, len(nodes))
	for _, node := range nodes {
		result, err := in.eval(node, in.root)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Import evaluates a module registered on the context into the root scope.
func (in *Interpreter) Import(name string) error {
	source, ok := in.context.Module(name)
	if !ok {
		return nameErrorf(Position{}, "module %s not found", name)
	}

	nodes, err := ParseSource(source)
	if err != nil {
		return err
	}

	if _, err := in.Interpret(nodes); err != nil {
		return err
	}

	in.log.Debug("imported module", "module", name)
	return nil
}

func (in *Interpreter) eval(node Node, scope *Scope) (Value, error) {
	switch node := node.(type) {
	case *LetNode:
		return in.evalLet(node, scope)
	case *FunctionNode:
		return in.evalFunction(node, scope)
	case *IdentifierNode:
		v, ok := scope.Get(node.Name)
		if !ok {
			return nil, nameErrorf(node.Pos(), "undefined identifier: %s", node.Name)
		}
		return v, nil
	case *LiteralNode:
		return node.Value, nil
	case *StringNode:
		return StringValue(node.Payload), nil
	case *CallNode:
		return in.evalCall(node, scope)
	case *IfNode:
		return in.evalIf(node, scope)
	case *ComparisonNode:
		return in.evalComparison(node, scope)
	case *BinaryNode:
		return in.evalBinary(node, scope)
	case *MatchNode:
		return in.evalMatch(node, scope)
	}

	return nil, valueErrorf(node.Pos(), "unknown node type: %s", node.Kind())
}

func (in *Interpreter) check(tag string, v Value, pos Position, what string) error {
	ok, err := checkType(tag, v, in.context.Config.StrictTypes)
	if err != nil {
		return typeErrorf(pos, "%s: %s", what, err)
	}
	if !ok {
		return typeErrorf(pos, "%s: expected %s, got %s", what, tag, TypeName(v))
	}
	return nil
}

func (in *Interpreter) evalLet(node *LetNode, scope *Scope) (Value, error) {
	value, err := in.eval(node.Value, scope)
	if err != nil {
		return nil, err
	}

	if err := in.check(node.Type.Tag, value, node.Value.Pos(), "let "+node.Name); err != nil {
		return nil, err
	}

	scope.Define(node.Name, node.Type.Tag, value)
	in.log.Debug("adding binding", "name", node.Name, "type", node.Type.Tag)

	return value, nil
}

func (in *Interpreter) evalFunction(node *FunctionNode, scope *Scope) (Value, error) {
	params := make([]Param, len(node.Params.Params))
	for i, p := range node.Params.Params {
		params[i] = Param{Name: p.Name, Type: p.Type.Tag}
	}

	fn := &FunctionValue{
		Name:       node.Name,
		Params:     params,
		ReturnType: node.ReturnType.Tag,
		Body:       node.Body,
	}

	scope.Define(node.Name, TypeFunction, fn)
	in.log.Debug("adding function binding", "function", node.Name, "params", len(params))

	return StringValue(fmt.Sprintf("Function %s defined", node.Name)), nil
}

func (in *Interpreter) evalCall(node *CallNode, scope *Scope) (Value, error) {
	entry, ok := scope.Get(node.Name)
	fn, isFn := entry.(*FunctionValue)
	if !ok || !isFn {
		return nil, nameErrorf(node.Pos(), "undefined function: %s", node.Name)
	}

	if len(node.Args) != len(fn.Params) {
		return nil, typeErrorf(node.Pos(), "function %s expects %d arguments, got %d",
			fn.Name, len(fn.Params), len(node.Args))
	}

	// arguments are evaluated in the caller's scope; the body only ever
	// writes to its overlay
	frame := scope.Child()
	for i, arg := range node.Args {
		value, err := in.eval(arg, scope)
		if err != nil {
			return nil, err
		}

		param := fn.Params[i]
		what := fmt.Sprintf("argument %s of %s", param.Name, fn.Name)
		if err := in.check(param.Type, value, arg.Pos(), what); err != nil {
			return nil, err
		}

		frame.Define(param.Name, param.Type, value)
	}

	if in.depth >= in.context.Config.MaxCallDepth {
		return nil, valueErrorf(node.Pos(), "maximum call depth exceeded calling %s", fn.Name)
	}

	in.depth++
	result, err := in.eval(fn.Body, frame)
	in.depth--
	if err != nil {
		return nil, err
	}

	if err := in.check(fn.ReturnType, result, node.Pos(), "return value of "+fn.Name); err != nil {
		return nil, err
	}

	return result, nil
}

func (in *Interpreter) evalIf(node *IfNode, scope *Scope) (Value, error) {
	cond, err := in.eval(node.Cond, scope)
	if err != nil {
		return nil, err
	}

	b, ok := cond.(BoolValue)
	if !ok {
		return nil, typeErrorf(node.Cond.Pos(), "if condition must be %s, got %s", TypeBool, TypeName(cond))
	}

	if b {
		return in.eval(node.Then, scope)
	}
	return in.eval(node.Else, scope)
}

func (in *Interpreter) intOperands(op string, left, right Node, scope *Scope) (IntValue, IntValue, error) {
	l, err := in.eval(left, scope)
	if err != nil {
		return 0, 0, err
	}

	r, err := in.eval(right, scope)
	if err != nil {
		return 0, 0, err
	}

	li, lok := l.(IntValue)
	ri, rok := r.(IntValue)
	if !lok || !rok {
		return 0, 0, typeErrorf(left.Pos(), "operator %s requires %s operands, got %s and %s",
			op, TypeInt, TypeName(l), TypeName(r))
	}

	return li, ri, nil
}

func (in *Interpreter) evalComparison(node *ComparisonNode, scope *Scope) (Value, error) {
	left, right, err := in.intOperands(node.Op, node.Left, node.Right, scope)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case ">":
		return BoolValue(left > right), nil
	case "<":
		return BoolValue(left < right), nil
	case ">=":
		return BoolValue(left >= right), nil
	case "<=":
		return BoolValue(left <= right), nil
	case "==":
		return BoolValue(left == right), nil
	case "!=":
		return BoolValue(left != right), nil
	}

	return nil, valueErrorf(node.Pos(), "unknown operator: %s", node.Op)
}

func (in *Interpreter) evalBinary(node *BinaryNode, scope *Scope) (Value, error) {
	left, right, err := in.intOperands(node.Op, node.Left, node.Right, scope)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case "+":
		sum := left + right
		if (left^sum)&(right^sum) < 0 {
			return nil, valueErrorf(node.Pos(), "integer overflow")
		}
		return sum, nil
	case "-":
		diff := left - right
		if (left^right)&(left^diff) < 0 {
			return nil, valueErrorf(node.Pos(), "integer overflow")
		}
		return diff, nil
	case "*":
		product := left * right
		if left != 0 && (product/left != right || (left == -1 && right == math.MinInt64)) {
			return nil, valueErrorf(node.Pos(), "integer overflow")
		}
		return product, nil
	case "/":
		if right == 0 {
			return nil, valueErrorf(node.Pos(), "division by zero")
		}
		return FloatValue(float64(left) / float64(right)), nil
	}

	return nil, valueErrorf(node.Pos(), "unknown operator: %s", node.Op)
}

func (in *Interpreter) evalMatch(node *MatchNode, scope *Scope) (Value, error) {
	subject, err := in.eval(node.Subject, scope)
	if err != nil {
		return nil, err
	}

	for _, c := range node.Cases {
		switch pattern := c.Pattern.(type) {
		case *WildcardNode:
			return in.eval(c.Result, scope)
		case *LiteralNode:
			if pattern.Value.Eq(subject) {
				return in.eval(c.Result, scope)
			}
		case *StringNode:
			if StringValue(pattern.Payload).Eq(subject) {
				return in.eval(c.Result, scope)
			}
		case *IdentifierNode:
			return in.eval(c.Result, scope.Bind(pattern.Name, TypeName(subject), subject))
		default:
			return nil, valueErrorf(c.Pattern.Pos(), "invalid pattern: %s", c.Pattern.Kind())
		}
	}

	return nil, valueErrorf(node.Pos(), "no matching pattern for %s", subject)
}
