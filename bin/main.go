package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/reeflective/readline"
	"github.com/spf13/cobra"

	"github.com/ajkachnic/tern/core"
	"github.com/ajkachnic/tern/modules"
)

const version = "0.1.0"

type options struct {
	Emit        bool
	DebugTokens bool
	DebugAst    bool
	Debug       bool
	Strict      bool
	MaxDepth    int
	ConfigPath  string
	Preludes    []string
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:     "tern [flags] [file]",
		Short:   "tern is a tiny typed expression language",
		Version: version,
		Example: `  # Run a file
  tern script.tn

  # Print the f32 instruction listing instead of evaluating
  tern --emit script.tn

  # Start the REPL with the math module loaded
  tern --prelude math`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newContext(cmd, opts)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return runFile(cmd.OutOrStdout(), &ctx, opts, args[0])
			}
			return repl(&ctx, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.Emit, "emit", false, "print the instruction listing instead of evaluating")
	flags.BoolVar(&opts.DebugTokens, "debug-tokens", false, "print tokens")
	flags.BoolVar(&opts.DebugAst, "debug-ast", false, "print AST")
	flags.BoolVarP(&opts.Debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&opts.Strict, "strict", false, "reject unknown type annotations")
	flags.IntVar(&opts.MaxDepth, "max-depth", core.DefaultMaxCallDepth, "maximum nested call depth")
	flags.StringVar(&opts.ConfigPath, "config", "", "path to a TOML config file")
	flags.StringSliceVar(&opts.Preludes, "prelude", nil, "module to import before running (repeatable)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		os.Exit(1)
	}
}

func newContext(cmd *cobra.Command, opts options) (core.Context, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: color.NoColor,
	}))
	slog.SetDefault(logger)

	config := core.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := core.LoadConfig(opts.ConfigPath)
		if err != nil {
			return core.Context{}, err
		}
		config = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		config.StrictTypes = opts.Strict
	}
	if flags.Changed("max-depth") {
		if opts.MaxDepth <= 0 {
			return core.Context{}, errors.Errorf("--max-depth must be positive, got %d", opts.MaxDepth)
		}
		config.MaxCallDepth = opts.MaxDepth
	}
	config.Preludes = append(config.Preludes, opts.Preludes...)
	config.Logger = logger

	ctx := core.NewContext(config)
	if err := modules.Initialize(&ctx); err != nil {
		return core.Context{}, err
	}

	return ctx, nil
}

func parse(out io.Writer, opts options, source string) ([]core.Node, error) {
	tokens, err := core.Tokenize(source)
	if err != nil {
		return nil, err
	}

	if opts.DebugTokens {
		fmt.Fprintln(out, strings.Join(core.Lexemes(tokens), " "))
	}

	ast, err := core.Parse(tokens)
	if err != nil {
		return nil, err
	}

	if opts.DebugAst {
		for _, node := range ast {
			fmt.Fprintf(out, "%# v\n", pretty.Formatter(node))
		}
	}

	return ast, nil
}

func runFile(out io.Writer, ctx *core.Context, opts options, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read file")
	}

	ast, err := parse(out, opts, string(content))
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	if opts.Emit {
		listing, err := core.Emit(ast)
		if err != nil {
			return errors.Wrapf(err, "emit %s", path)
		}
		return printListing(out, listing)
	}

	interpreter := core.NewInterpreter(ctx)
	for _, name := range ctx.Config.Preludes {
		if err := interpreter.Import(name); err != nil {
			return errors.Wrapf(err, "import %s", name)
		}
	}

	results, err := interpreter.Interpret(ast)
	if err != nil {
		return errors.Wrapf(err, "run %s", path)
	}

	for _, result := range results {
		fmt.Fprintln(out, result)
	}

	return nil
}

func printListing(out io.Writer, listing string) error {
	if color.NoColor {
		_, err := io.WriteString(out, listing)
		return err
	}

	// the listing is s-expression shaped, which the scheme lexer colors well
	return quick.Highlight(out, listing, "scheme", "terminal256", "monokai")
}

func repl(ctx *core.Context, opts options) error {
	rl := readline.NewShell()
	rl.Prompt.Primary(func() string { return "> " })
	rl.SyntaxHighlighter = highlight

	interpreter := core.NewInterpreter(ctx)
	for _, name := range ctx.Config.Preludes {
		if err := interpreter.Import(name); err != nil {
			return errors.Wrapf(err, "import %s", name)
		}
	}

	emitter := core.NewEmitter()
	out := os.Stdout

	for {
		text, err := rl.Readline()

		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		text = strings.TrimSpace(text)

		switch {
		case text == "":
			continue
		case text == ":quit":
			return nil
		case text == ":env":
			printEnv(out, interpreter.Scope())
			continue
		case strings.HasPrefix(text, ":emit "):
			ast, err := parse(out, opts, strings.TrimPrefix(text, ":emit "))
			if err != nil {
				fmt.Fprintln(out, color.RedString(err.Error()))
				continue
			}

			listing, err := emitter.Emit(ast)
			if err != nil {
				fmt.Fprintln(out, color.RedString(err.Error()))
				continue
			}

			if err := printListing(out, listing); err != nil {
				return err
			}
			continue
		}

		ast, err := parse(out, opts, text)
		if err != nil {
			fmt.Fprintln(out, color.RedString(err.Error()))
			continue
		}

		results, err := interpreter.Interpret(ast)
		if err != nil {
			fmt.Fprintln(out, color.RedString(err.Error()))
			continue
		}

		for _, result := range results {
			fmt.Fprintln(out, result)
		}
	}
}

func printEnv(out io.Writer, scope *core.Scope) {
	for _, name := range scope.Names() {
		value, _ := scope.Get(name)
		tag, _ := scope.TypeOf(name)
		if tag == "" {
			tag = "_"
		}
		fmt.Fprintf(out, "%s: %s = %s\n", name, color.CyanString(tag), value)
	}
}

func highlight(line []rune) string {
	source := string(line)
	tokens, err := core.Tokenize(source)
	if err != nil {
		return source
	}

	builder := strings.Builder{}

	i := 0
	for _, token := range tokens {
		if token.Pos.Offset > i {
			builder.WriteString(source[i:token.Pos.Offset])
		}

		lexeme := source[token.Pos.Offset : token.Pos.Offset+int(token.Length)]

		switch token.Kind {
		case core.STRING_LITERAL:
			builder.WriteString(color.GreenString(lexeme))
		case core.NUMBER_LITERAL, core.TRUE_LITERAL, core.FALSE_LITERAL:
			builder.WriteString(color.MagentaString(lexeme))
		case core.LET_KEYWORD, core.FN_KEYWORD, core.IF_KEYWORD, core.THEN_KEYWORD,
			core.ELSE_KEYWORD, core.MATCH_KEYWORD:
			builder.WriteString(color.BlueString(lexeme))
		default:
			builder.WriteString(lexeme)
		}

		i = token.Pos.Offset + int(token.Length)
	}

	if i < len(source) {
		builder.WriteString(source[i:])
	}

	return builder.String()
}
