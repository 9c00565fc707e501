package core

func Tokenize(source string) ([]Token, error) {
	tokenizer := NewTokenizer(source)
	return tokenizer.Tokenize()
}

func Parse(tokens []Token) ([]Node, error) {
	parser := NewParser(tokens)
	return parser.Parse()
}

func ParseSource(source string) ([]Node, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	return Parse(tokens)
}

// Interpret evaluates nodes in a fresh interpreter with the default
// configuration.
func Interpret(nodes []Node) ([]Value, error) {
	ctx := NewContext(DefaultConfig())
	return NewInterpreter(&ctx).Interpret(nodes)
}

func Emit(nodes []Node) (string, error) {
	return NewEmitter().Emit(nodes)
}

// Run parses source and evaluates it in a new interpreter, importing the
// configured preludes first.
func Run(ctx *Context, source string) ([]Value, error) {
	nodes, err := ParseSource(source)
	if err != nil {
		return nil, err
	}

	interpreter := NewInterpreter(ctx)
	for _, name := range ctx.Config.Preludes {
		if err := interpreter.Import(name); err != nil {
			return nil, err
		}
	}

	return interpreter.Interpret(nodes)
}
