package argbind

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/huandu/xstrings"
	"github.com/mfridman/xflag"

	"github.com/mfridman/argbind/pkg/suggest"
)

// Parse synthesizes a command-line interface from v, which must be a non-nil pointer to a
// struct, parses args against it, and populates v with the results. Typically called with
// os.Args[1:].
//
// Fields absent from the command line keep their defaults. Subcommand branches that were not
// selected are set to nil, so after a successful parse exactly one branch along any nesting path
// holds values. Descriptors are rebuilt from scratch on every call; parsing the same struct twice
// is safe.
//
// A returned error is a usage error unless it is [flag.ErrHelp], which signals that help was
// requested and printed.
func Parse(v any, args []string, opts *Options) error {
	opts = checkAndSetOptions(opts)
	rv, err := structValue(v)
	if err != nil {
		return err
	}
	name := opts.Name
	if name == "" {
		name = xstrings.ToSnakeCase(rv.Type().Name())
		if name == "" {
			name = "args"
		}
	}
	root, err := readScope(name, rv, opts)
	if err != nil {
		return err
	}
	if !opts.DisableShortcuts {
		assignShortcuts(root)
	}

	p := &parser{opts: opts, root: root, path: []*scope{root}}
	if err := p.run(args); err != nil {
		return err
	}
	if err := bindScope(rv, root); err != nil {
		return err
	}
	if opts.Show != ShowNone {
		PrintArgs(opts.showOutput(), v, opts.Show, opts.Table)
	}
	return nil
}

// ParseArgs is Parse with os.Args[1:].
func ParseArgs(v any, opts *Options) error {
	return Parse(v, os.Args[1:], opts)
}

// ParseString splits line using shell quoting rules and parses the resulting tokens. Useful in
// tests and REPL-style callers.
func ParseString(v any, line string, opts *Options) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("split %q: %w", line, err)
	}
	return Parse(v, tokens, opts)
}

// MustParse is Parse with the underlying library's process-terminating behavior: usage errors
// print to stderr and exit with status 2, a help request exits with status 0.
func MustParse(v any, args []string, opts *Options) {
	err := Parse(v, args, opts)
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintln(checkAndSetOptions(opts).helpOutput(), err)
	os.Exit(2)
}

// parser drives one parse: scope selection, flag registration, and positional distribution over
// a single combined [flag.FlagSet].
type parser struct {
	opts *Options
	root *scope
	path []*scope // selected scope chain, root first
	fs   *flag.FlagSet
}

func (p *parser) run(args []string) error {
	argsToParse, remaining := splitAtTerminator(args)

	consumed, err := p.selectScopes(argsToParse)
	if err != nil {
		return err
	}
	tokens := dropIndexes(argsToParse, consumed)

	p.register()

	tokens, err = p.expandLists(tokens)
	if err != nil {
		return p.scopeErr(err)
	}
	if err := xflag.ParseToEnd(p.fs, tokens); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(p.opts.helpOutput(), usageText(p.opts, p.path))
			return flag.ErrHelp
		}
		return p.scopeErr(err)
	}

	leftover := append(p.fs.Args(), remaining...)
	if err := p.bindPositionals(leftover); err != nil {
		return p.scopeErr(err)
	}
	return p.checkRequired()
}

func (p *parser) current() *scope {
	return p.path[len(p.path)-1]
}

func (p *parser) scopeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("command %q: %w", p.current().name, err)
}

// selectScopes walks the tokens once before flag parsing: it captures help requests, descends
// the subcommand tree on bare tokens, and returns the token indexes consumed as subcommand
// selectors. Bare tokens are matched against subcommands only after the current scope's
// positional slots are spoken for.
func (p *parser) selectScopes(tokens []string) (map[int]bool, error) {
	consumed := make(map[int]bool)
	slots := p.current().positionalSlots()

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if isHelpToken(tok) {
			fmt.Fprintln(p.opts.helpOutput(), usageText(p.opts, p.path))
			return nil, flag.ErrHelp
		}
		if strings.HasPrefix(tok, "-") && tok != "-" {
			// A known value-taking flag owns the following tokens; skip them so they are
			// not mistaken for subcommand names.
			arg, negated := p.lookupFlag(tok)
			if arg == nil || negated || !arg.takesValue() || strings.Contains(tok, "=") {
				continue
			}
			if arg.Arity == ArityNone {
				i++
				continue
			}
			for i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
				i++
			}
			continue
		}

		// Bare token: positional first, then subcommand selector.
		if slots != 0 {
			if slots > 0 {
				slots--
			}
			continue
		}
		cur := p.current()
		if len(cur.subs) == 0 {
			break
		}
		sub := cur.findSub(tok)
		if sub == nil {
			return nil, p.scopeErr(&UnknownCommandError{
				Name:        tok,
				Suggestions: suggest.Suggest(tok, cur.subNames(), 3),
			})
		}
		sub.selected = true
		p.path = append(p.path, sub.sc)
		consumed[i] = true
		slots = sub.sc.positionalSlots()
		if l := p.opts.logger(); l != nil {
			l.Debug("selected subcommand", "name", sub.name)
		}
	}
	return consumed, nil
}

// lookupFlag resolves a flag token against the selected scope chain, innermost scope first.
// Returns the descriptor and whether the matched spelling was the negated no- form.
func (p *parser) lookupFlag(tok string) (*Arg, bool) {
	name := strings.TrimLeft(tok, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	for i := len(p.path) - 1; i >= 0; i-- {
		for _, a := range p.path[i].args {
			if a.Positional {
				continue
			}
			for _, spelling := range a.names() {
				if name == spelling {
					return a, false
				}
				if a.negated() && name == "no-"+spelling {
					return a, true
				}
			}
		}
	}
	return nil, false
}

// register builds the combined flag set for the selected scope chain. Child scopes register
// first so their spellings shadow parent spellings of the same name, matching how nested parsers
// take precedence.
func (p *parser) register() {
	fs := flag.NewFlagSet(p.root.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	for i := len(p.path) - 1; i >= 0; i-- {
		for _, a := range p.path[i].args {
			if a.Positional {
				continue
			}
			registerArg(fs, a)
		}
	}
	p.fs = fs
}

func registerArg(fs *flag.FlagSet, a *Arg) {
	help := a.Help
	for _, name := range a.names() {
		if fs.Lookup(name) != nil {
			continue
		}
		switch {
		case a.pairedBool():
			fs.Var(&boolPairFlag{arg: a}, name, help)
		case a.Arity != ArityNone:
			fs.Var(&listFlag{arg: a}, name, help)
		default:
			fs.Var(&scalarFlag{arg: a}, name, help)
		}
	}
	if a.negated() {
		for _, name := range a.names() {
			if fs.Lookup("no-"+name) != nil {
				continue
			}
			fs.Var(&boolPairFlag{arg: a, negate: true}, "no-"+name, "")
		}
	}
}

// expandLists rewrites greedy multi-value flags into the repeated form the flag package
// understands: --tags a b becomes --tags=a --tags=b. A one-or-more flag given without values is
// a usage error; a zero-or-more flag given without values explicitly binds an empty list.
func (p *parser) expandLists(tokens []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok, "-") || tok == "-" || strings.Contains(tok, "=") {
			out = append(out, tok)
			continue
		}
		arg, negated := p.lookupFlag(tok)
		if arg == nil || negated || arg.Arity == ArityNone {
			out = append(out, tok)
			continue
		}
		j := i + 1
		for j < len(tokens) && !strings.HasPrefix(tokens[j], "-") {
			j++
		}
		values := tokens[i+1 : j]
		if len(values) == 0 {
			if arg.Arity == ArityOneOrMore {
				return nil, &MissingArgError{Dest: arg.Dest}
			}
			arg.h.set([]any(nil))
		}
		for _, v := range values {
			out = append(out, tok+"="+v)
		}
		i = j - 1
	}
	return out, nil
}

// bindPositionals distributes the non-flag tokens left after flag parsing across the selected
// scope chain's positionals, in declaration order. A positional slice consumes the remainder.
func (p *parser) bindPositionals(tokens []string) error {
	for _, sc := range p.path {
		for _, a := range sc.args {
			if !a.Positional {
				continue
			}
			if a.Arity != ArityNone {
				if len(tokens) == 0 && a.Arity == ArityOneOrMore {
					return &MissingArgError{Dest: a.Dest}
				}
				lf := &listFlag{arg: a}
				for _, tok := range tokens {
					if err := lf.Set(tok); err != nil {
						return fmt.Errorf("argument %q: %w", a.Dest, err)
					}
				}
				tokens = nil
				continue
			}
			if len(tokens) == 0 {
				if a.Required {
					return &MissingArgError{Dest: a.Dest}
				}
				continue
			}
			sf := &scalarFlag{arg: a}
			if err := sf.Set(tokens[0]); err != nil {
				return fmt.Errorf("argument %q: %w", a.Dest, err)
			}
			tokens = tokens[1:]
		}
	}
	if len(tokens) > 0 {
		return fmt.Errorf("unrecognized arguments: %s", strings.Join(tokens, " "))
	}
	return nil
}

func (p *parser) checkRequired() error {
	var missing []string
	for _, sc := range p.path {
		for _, a := range sc.args {
			if a.Required && !a.h.seen {
				missing = append(missing, a.Dest)
			}
		}
	}
	if len(missing) > 0 {
		return p.scopeErr(fmt.Errorf("required flag(s) %q not set", strings.Join(missing, ", ")))
	}
	return nil
}

// splitAtTerminator cuts the token list at the first bare "--"; everything after it is
// positional no matter what it looks like.
func splitAtTerminator(args []string) (toParse, remaining []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func dropIndexes(tokens []string, drop map[int]bool) []string {
	if len(drop) == 0 {
		return tokens
	}
	out := make([]string, 0, len(tokens)-len(drop))
	for i, tok := range tokens {
		if !drop[i] {
			out = append(out, tok)
		}
	}
	return out
}

func isHelpToken(tok string) bool {
	switch tok {
	case "-h", "--h", "-help", "--help":
		return true
	}
	return false
}
