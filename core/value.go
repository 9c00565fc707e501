package core

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TypeInt      = "int"
	TypeStr      = "str"
	TypeBool     = "bool"
	TypeFloat    = "float"
	TypeFunction = "function"
)

type Value interface {
	String() string
	Eq(v Value) bool
}

type IntValue int64

func (v IntValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v IntValue) Eq(u Value) bool {
	if w, ok := u.(IntValue); ok {
		return v == w
	} else if w, ok := u.(FloatValue); ok {
		return FloatValue(v) == w
	}

	return false
}

// FloatValue only arises from division.
type FloatValue float64

func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

func (v FloatValue) Eq(u Value) bool {
	if w, ok := u.(FloatValue); ok {
		return v == w
	} else if w, ok := u.(IntValue); ok {
		return v == FloatValue(w)
	}

	return false
}

type BoolValue bool

func (v BoolValue) String() string {
	return strconv.FormatBool(bool(v))
}

func (v BoolValue) Eq(u Value) bool {
	if w, ok := u.(BoolValue); ok {
		return v == w
	}
	return false
}

type StringValue string

func (v StringValue) String() string {
	return strconv.Quote(string(v))
}

func (v StringValue) Eq(u Value) bool {
	if w, ok := u.(StringValue); ok {
		return v == w
	}
	return false
}

type Param struct {
	Name string
	Type string
}

// FunctionValue is a named function binding. Its body is resolved against
// whatever scope is active when it is called.
type FunctionValue struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       Node
}

func (v *FunctionValue) String() string {
	params := make([]string, len(v.Params))
	for i, p := range v.Params {
		if p.Type == "" {
			params[i] = p.Name
		} else {
			params[i] = p.Name + ": " + p.Type
		}
	}

	ret := ""
	if v.ReturnType != "" {
		ret = " -> " + v.ReturnType
	}

	return fmt.Sprintf("fn %s(%s)%s", v.Name, strings.Join(params, ", "), ret)
}

func (v *FunctionValue) Eq(u Value) bool {
	w, ok := u.(*FunctionValue)
	return ok && v == w
}

// TypeName is the tag a runtime value would satisfy.
func TypeName(v Value) string {
	switch v.(type) {
	case IntValue:
		return TypeInt
	case FloatValue:
		return TypeFloat
	case BoolValue:
		return TypeBool
	case StringValue:
		return TypeStr
	case *FunctionValue:
		return TypeFunction
	}

	return "unknown"
}

// checkType reports whether v satisfies the declared tag. Only int, str and
// bool are checked; an empty tag always passes. Other tags pass unless
// strict is set, in which case function is checked and the rest rejected.
func checkType(tag string, v Value, strict bool) (bool, error) {
	switch tag {
	case "":
		return true, nil
	case TypeInt:
		_, ok := v.(IntValue)
		return ok, nil
	case TypeStr:
		_, ok := v.(StringValue)
		return ok, nil
	case TypeBool:
		_, ok := v.(BoolValue)
		return ok, nil
	}

	if !strict {
		return true, nil
	}

	if tag == TypeFunction {
		_, ok := v.(*FunctionValue)
		return ok, nil
	}

	return false, fmt.Errorf("unknown type %s", tag)
}
