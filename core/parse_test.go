package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, source string) Node {
	t.Helper()

	nodes, err := ParseSource(source)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	return nodes[0]
}

func TestParseLet(t *testing.T) {
	tokens, err := Tokenize("let x: int = 10")
	require.NoError(t, err)

	nodes, err := Parse(tokens)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	let, ok := nodes[0].(*LetNode)
	require.True(t, ok)
	assert.Equal(t, KindLet, let.Kind())
	assert.Equal(t, "x", let.Name)
	assert.Equal(t, KindType, let.Type.Kind())
	assert.Equal(t, "int", let.Type.Tag)

	lit, ok := let.Value.(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, KindLiteral, lit.Kind())
	assert.Equal(t, IntValue(10), lit.Value)
}

func TestParseUnannotatedLet(t *testing.T) {
	let := parseOne(t, "let x = 10").(*LetNode)
	assert.Equal(t, "", let.Type.Tag)
	assert.Equal(t, "let x = 10", let.String())
}

func TestParseFunction(t *testing.T) {
	fn := parseOne(t, "fn add(a: int, b: int) -> int = a + b").(*FunctionNode)

	assert.Equal(t, KindFunction, fn.Kind())
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, KindParams, fn.Params.Kind())
	require.Len(t, fn.Params.Params, 2)
	assert.Equal(t, KindParam, fn.Params.Params[0].Kind())
	assert.Equal(t, "a", fn.Params.Params[0].Name)
	assert.Equal(t, "int", fn.Params.Params[0].Type.Tag)
	assert.Equal(t, "b", fn.Params.Params[1].Name)
	assert.Equal(t, KindReturnType, fn.ReturnType.Kind())
	assert.Equal(t, "int", fn.ReturnType.Tag)

	body, ok := fn.Body.(*BinaryNode)
	require.True(t, ok)
	assert.Equal(t, "+", body.Op)
	assert.Equal(t, "fn add(a: int, b: int) -> int = (a + b)", fn.String())
}

func TestParseUntypedFunction(t *testing.T) {
	fn := parseOne(t, "fn f(a b) = a").(*FunctionNode)
	require.Len(t, fn.Params.Params, 2)
	assert.Equal(t, "", fn.Params.Params[1].Type.Tag)
	assert.Equal(t, "", fn.ReturnType.Tag)
	assert.Equal(t, "fn f(a, b) = a", fn.String())
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "arithmetic chains left to right",
			input:    "1 + 2 * 3",
			expected: "((1 + 2) * 3)",
		},
		{
			name:     "comparisons fold before arithmetic",
			input:    "a > b + c",
			expected: "((a > b) + c)",
		},
		{
			name:     "comparison chain",
			input:    "a < b == c",
			expected: "((a < b) == c)",
		},
		{
			name:     "call arguments are full expressions",
			input:    "f(a + 1, g(b) c)",
			expected: "f((a + 1), g(b), c)",
		},
		{
			name:     "if branches",
			input:    "if x >= 1 then \"big\" else \"small\"",
			expected: `if (x >= 1) then "big" else "small"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, parseOne(t, tt.input).String())
		})
	}
}

func TestParseOperatorAfterArithmeticEndsExpression(t *testing.T) {
	_, err := ParseSource("a + b > c")
	require.Error(t, err)

	syntaxErr, ok := err.(*SyntaxError)
	require.True(t, ok)
	assert.Equal(t, "expression", syntaxErr.Expected)
	assert.Equal(t, ">", syntaxErr.Actual)
	assert.Equal(t, 3, syntaxErr.Index)
}

func TestParseProgram(t *testing.T) {
	nodes, err := ParseSource(`
		let x: int = 10
		let y: int = 20
		fn add(a: int, b: int) -> int = a + b
		add(x, y)
	`)
	require.NoError(t, err)

	kinds := make([]NodeKind, len(nodes))
	for i, n := range nodes {
		kinds[i] = n.Kind()
	}
	require.Equal(t, []NodeKind{KindLet, KindLet, KindFunction, KindCall}, kinds)
}

func TestParseMatch(t *testing.T) {
	m := parseOne(t, `match n { 1 -> "one", "s" -> 2, true -> 3, k -> k, _ -> 0 }`).(*MatchNode)

	assert.Equal(t, KindMatch, m.Kind())
	assert.Equal(t, KindIdentifier, m.Subject.Kind())
	require.Len(t, m.Cases, 5)

	patterns := make([]NodeKind, len(m.Cases))
	for i, c := range m.Cases {
		assert.Equal(t, KindCase, c.Kind())
		patterns[i] = c.Pattern.Kind()
	}
	assert.Equal(t, []NodeKind{KindLiteral, KindString, KindLiteral, KindIdentifier, KindWildcard}, patterns)
	assert.Equal(t, BoolValue(true), m.Cases[2].Pattern.(*LiteralNode).Value)
}

func TestParseStringEscapes(t *testing.T) {
	str := parseOne(t, `"a\tb\n\"q\"\x41\\"`).(*StringNode)
	assert.Equal(t, "a\tb\n\"q\"A\\", str.Payload)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		actual   string
	}{
		{
			name:     "missing equals in let",
			input:    "let x: int 10",
			expected: `"="`,
			actual:   "10",
		},
		{
			name:     "let without a name",
			input:    "let = 1",
			expected: "identifier",
			actual:   "=",
		},
		{
			name:     "if without then",
			input:    "if x 1 else 2",
			expected: `"then"`,
			actual:   "1",
		},
		{
			name:     "if without else",
			input:    "if x then 1",
			expected: `"else"`,
			actual:   "end of input",
		},
		{
			name:     "unclosed call",
			input:    "f(1, 2",
			expected: "expression",
			actual:   "end of input",
		},
		{
			name:     "bad pattern",
			input:    "match x { ( -> 1 }",
			expected: "pattern",
			actual:   "(",
		},
		{
			name:     "match without arrow",
			input:    "match x { 1 2 }",
			expected: `"->"`,
			actual:   "2",
		},
		{
			name:     "wildcard used as a value",
			input:    "let x = _",
			expected: "expression",
			actual:   "_",
		},
		{
			name:     "integer overflow",
			input:    "99999999999999999999",
			expected: "64-bit integer",
			actual:   "99999999999999999999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := ParseSource(tt.input)
			require.Error(t, err)
			require.Nil(t, nodes)
			require.Equal(t, SyntaxErrorKind, KindOf(err))

			syntaxErr := err.(*SyntaxError)
			assert.Equal(t, tt.expected, syntaxErr.Expected)
			assert.Equal(t, tt.actual, syntaxErr.Actual)
		})
	}
}
