package core

import (
	"fmt"
	"strconv"
	"unicode"
)

type TokenKind int

const (
	UNKNOWN TokenKind = iota
	EOF
	COMMENT

	// punctuation
	COMMA
	COLON
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACKET
	RIGHT_BRACKET
	LEFT_BRACE
	RIGHT_BRACE
	SET // =
	SINGLE_ARROW

	// arithmetic operators
	PLUS
	MINUS
	TIMES
	DIVIDE

	// comparison operators
	GREATER
	LESS
	EQ
	GEQ
	LEQ
	NEQ

	// keywords
	LET_KEYWORD
	FN_KEYWORD
	IF_KEYWORD
	THEN_KEYWORD
	ELSE_KEYWORD
	MATCH_KEYWORD
	WILDCARD

	// literals
	IDENTIFIER
	TRUE_LITERAL
	FALSE_LITERAL
	STRING_LITERAL
	NUMBER_LITERAL
)

var keywords = map[string]TokenKind{
	"let":   LET_KEYWORD,
	"fn":    FN_KEYWORD,
	"if":    IF_KEYWORD,
	"then":  THEN_KEYWORD,
	"else":  ELSE_KEYWORD,
	"match": MATCH_KEYWORD,
	"true":  TRUE_LITERAL,
	"false": FALSE_LITERAL,
	"_":     WILDCARD,
}

// Position is the 1-based line and column of a token, plus its byte offset.
type Position struct {
	Line   int
	Col    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("[%d:%d]", p.Line, p.Col)
}

// Token is one lexeme. Length is its size in source bytes.
type Token struct {
	Kind    TokenKind
	Pos     Position
	Payload string
	Length  uint
}

// Lexeme returns the token as it is spelled in source.
func (t Token) Lexeme() string {
	switch t.Kind {
	case IDENTIFIER, NUMBER_LITERAL:
		return t.Payload
	case STRING_LITERAL:
		return `"` + t.Payload + `"`
	case EOF:
		return ""
	}

	return t.Kind.String()
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER:
		return fmt.Sprintf("var(%s)", t.Payload)
	case STRING_LITERAL:
		return fmt.Sprintf("string(%s)", strconv.Quote(t.Payload))
	case NUMBER_LITERAL:
		return fmt.Sprintf("number(%s)", t.Payload)
	}

	return t.Kind.String()
}

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case COMMA:
		return ","
	case COLON:
		return ":"
	case LEFT_PAREN:
		return "("
	case RIGHT_PAREN:
		return ")"
	case LEFT_BRACKET:
		return "["
	case RIGHT_BRACKET:
		return "]"
	case LEFT_BRACE:
		return "{"
	case RIGHT_BRACE:
		return "}"
	case SET:
		return "="
	case SINGLE_ARROW:
		return "->"

	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case TIMES:
		return "*"
	case DIVIDE:
		return "/"
	case GREATER:
		return ">"
	case LESS:
		return "<"
	case EQ:
		return "=="
	case GEQ:
		return ">="
	case LEQ:
		return "<="
	case NEQ:
		return "!="

	case LET_KEYWORD:
		return "let"
	case FN_KEYWORD:
		return "fn"
	case IF_KEYWORD:
		return "if"
	case THEN_KEYWORD:
		return "then"
	case ELSE_KEYWORD:
		return "else"
	case MATCH_KEYWORD:
		return "match"
	case WILDCARD:
		return "_"

	case IDENTIFIER:
		return "identifier"
	case TRUE_LITERAL:
		return "true"
	case FALSE_LITERAL:
		return "false"
	case STRING_LITERAL:
		return "string"
	case NUMBER_LITERAL:
		return "number"
	}

	return "<unknown>"
}

func (k TokenKind) isComparison() bool {
	switch k {
	case GREATER, LESS, EQ, GEQ, LEQ, NEQ:
		return true
	}
	return false
}

func (k TokenKind) isArithmetic() bool {
	switch k {
	case PLUS, MINUS, TIMES, DIVIDE:
		return true
	}
	return false
}

type tokenizer struct {
	source []rune
	index  int
	offset int
	line   int
	col    int
}

func NewTokenizer(source string) tokenizer {
	return tokenizer{
		source: []rune(source),
		index:  0,
		line:   1,
		col:    1,
	}
}

func (t *tokenizer) isEOF() bool {
	return t.index >= len(t.source)
}

func (t *tokenizer) next() rune {
	char := t.source[t.index]
	t.index++
	t.offset += len(string(char))

	if char == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}

	return char
}

func (t *tokenizer) peek() rune {
	if t.isEOF() {
		return 0
	}
	return t.source[t.index]
}

func (t *tokenizer) pos() Position {
	return Position{Line: t.line, Col: t.col, Offset: t.offset}
}

func (t *tokenizer) readUntil(ch rune) string {
	read := []rune{}
	for !t.isEOF() && t.peek() != ch {
		read = append(read, t.next())
	}

	return string(read)
}

func (t *tokenizer) readIdentifier() string {
	ident := []rune{}
	for !t.isEOF() {
		ch := t.peek()
		if unicode.IsLetter(ch) || isDigit(ch) || ch == '_' {
			ident = append(ident, t.next())
		} else {
			break
		}
	}

	return string(ident)
}

func (t *tokenizer) readNumber() string {
	literal := []rune{}
	for !t.isEOF() && isDigit(t.peek()) {
		literal = append(literal, t.next())
	}

	return string(literal)
}

// isDigit accepts ASCII digits only. Other Unicode digits are not numbers.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// withNext returns double when the upcoming rune is want, consuming it.
func (t *tokenizer) withNext(want rune, double, single TokenKind) TokenKind {
	if t.peek() == want {
		t.next()
		return double
	}
	return single
}

func (t *tokenizer) nextToken() (Token, error) {
	pos := t.pos()
	ch := t.next()

	simple := func(kind TokenKind) (Token, error) {
		return Token{Kind: kind, Pos: pos}, nil
	}

	switch ch {
	case ',':
		return simple(COMMA)
	case ':':
		return simple(COLON)
	case '(':
		return simple(LEFT_PAREN)
	case ')':
		return simple(RIGHT_PAREN)
	case '[':
		return simple(LEFT_BRACKET)
	case ']':
		return simple(RIGHT_BRACKET)
	case '{':
		return simple(LEFT_BRACE)
	case '}':
		return simple(RIGHT_BRACE)
	case '=':
		return simple(t.withNext('=', EQ, SET))
	case '>':
		return simple(t.withNext('=', GEQ, GREATER))
	case '<':
		return simple(t.withNext('=', LEQ, LESS))
	case '!':
		if t.peek() == '=' {
			t.next()
			return simple(NEQ)
		}
	case '+':
		return simple(PLUS)
	case '-':
		return simple(t.withNext('>', SINGLE_ARROW, MINUS))
	case '*':
		return simple(TIMES)
	case '/':
		if t.peek() == '/' {
			t.next()
			comment := t.readUntil('\n')
			return Token{Kind: COMMENT, Pos: pos, Payload: comment}, nil
		}
		return simple(DIVIDE)
	case '"':
		return t.readString(pos)
	default:
		if isDigit(ch) {
			payload := string(ch) + t.readNumber()
			return Token{Kind: NUMBER_LITERAL, Pos: pos, Payload: payload}, nil
		}

		if unicode.IsLetter(ch) || ch == '_' {
			payload := string(ch) + t.readIdentifier()
			if kind, ok := keywords[payload]; ok {
				return Token{Kind: kind, Pos: pos}, nil
			}
			return Token{Kind: IDENTIFIER, Pos: pos, Payload: payload}, nil
		}
	}

	return Token{Kind: UNKNOWN, Pos: pos}, &SyntaxError{
		Expected: "token",
		Actual:   string(ch),
		Pos:      pos,
		Index:    -1,
	}
}

// readString reads a string body after the opening quote. Escapes are kept
// raw and decoded by the parser.
func (t *tokenizer) readString(pos Position) (Token, error) {
	body := []rune{}

	for !t.isEOF() && t.peek() != '"' {
		ch := t.next()
		body = append(body, ch)
		if ch == '\\' && !t.isEOF() {
			body = append(body, t.next())
		}
	}

	if t.isEOF() {
		return Token{Kind: UNKNOWN, Pos: pos}, &SyntaxError{
			Expected: `"`,
			Actual:   "end of input",
			Pos:      t.pos(),
			Index:    -1,
		}
	}

	t.next()
	return Token{Kind: STRING_LITERAL, Pos: pos, Payload: string(body)}, nil
}

// Tokenize splits source into tokens, dropping whitespace and comments. An
// unrecognized character stops tokenizing with a *SyntaxError.
func (t *tokenizer) Tokenize() ([]Token, error) {
	tokens := []Token{}

	for {
		for !t.isEOF() && unicode.IsSpace(t.peek()) {
			t.next()
		}

		if t.isEOF() {
			return tokens, nil
		}

		next, err := t.nextToken()
		if err != nil {
			return nil, err
		}
		next.Length = uint(t.offset - next.Pos.Offset)

		if next.Kind != COMMENT {
			tokens = append(tokens, next)
		}
	}
}

// Lexemes returns the surface form of each token. String literals keep their
// quotes here; the Payload of a string token is the raw contents without them.
func Lexemes(tokens []Token) []string {
	lexemes := make([]string, len(tokens))
	for i, tok := range tokens {
		lexemes[i] = tok.Lexeme()
	}
	return lexemes
}
