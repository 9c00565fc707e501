package core

import (
	"bytes"
	"fmt"
)

var mnemonics = map[string]string{
	"+": "add",
	"-": "sub",
	"*": "mul",
	"/": "div",
}

// Emitter lowers let, function, params, call, identifier and binary_op nodes
// to a textual f32 stack-machine listing, in tree order. Output accumulates
// across calls to Emit. Binary operators are written as instruction
// mnemonics, so a + b becomes (f32.add) rather than (f32.+).
type Emitter struct {
	out bytes.Buffer
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// Emit appends the listing for nodes and returns the text added by this
// call. If any node cannot be emitted nothing is appended.
func (e *Emitter) Emit(nodes []Node) (string, error) {
	start := e.out.Len()

	for _, node := range nodes {
		if err := e.emitNode(node); err != nil {
			e.out.Truncate(start)
			return "", err
		}
	}

	return e.out.String()[start:], nil
}

// String returns everything emitted so far.
func (e *Emitter) String() string {
	return e.out.String()
}

func (e *Emitter) emit(format string, args ...any) {
	fmt.Fprintf(&e.out, format, args...)
}

func (e *Emitter) emitNode(node Node) error {
	switch node := node.(type) {
	case *LetNode:
		lit, ok := node.Value.(*LiteralNode)
		if !ok {
			return valueErrorf(node.Value.Pos(), "let %s: cannot emit %s as a constant", node.Name, node.Value.Kind())
		}
		n, ok := lit.Value.(IntValue)
		if !ok {
			return valueErrorf(lit.Pos(), "let %s: cannot emit %s constant", node.Name, TypeName(lit.Value))
		}

		e.emit("(local $%s (f32.const %d))\n", node.Name, int64(n))
	case *FunctionNode:
		e.emit("(func $%s ", node.Name)

		if err := e.emitNode(node.Params); err != nil {
			return err
		}
		if err := e.emitNode(node.Body); err != nil {
			return err
		}

		e.emit(")\n")
	case *ParamsNode:
		e.emit("(param ")
		for _, p := range node.Params {
			e.emit("(local $%s f32)", p.Name)
		}
		e.emit(")\n")
	case *CallNode:
		e.emit("(call $%s ", node.Name)
		for _, arg := range node.Args {
			if err := e.emitNode(arg); err != nil {
				return err
			}
		}
		e.emit(")\n")
	case *IdentifierNode:
		e.emit("$%s ", node.Name)
	case *BinaryNode:
		op, ok := mnemonics[node.Op]
		if !ok {
			return valueErrorf(node.Pos(), "unknown operator: %s", node.Op)
		}

		if err := e.emitNode(node.Left); err != nil {
			return err
		}
		if err := e.emitNode(node.Right); err != nil {
			return err
		}

		e.emit("(f32.%s)\n", op)
	default:
		return valueErrorf(node.Pos(), "unknown node type: %s", node.Kind())
	}

	return nil
}
