// Package typeexpr parses type expressions found inside tag values:
// unions, generic applications, array shorthand, records, function
// types, and the nullability/optionality modifiers.
//
// The grammar, roughly:
//
//	union    := unary ('|' unary)*
//	unary    := ('?' | '!' | '...')* postfix
//	postfix  := primary ('[]' | '=')*
//	primary  := '*' | '?' | name generic? | record | func | '(' union ')'
//	generic  := '.'? '<' union (',' union)* '>'
//	record   := '{' key (':' union)? (',' key (':' union)?)* '}'
//	func     := 'function' '(' (union (',' union)*)? ')' (':' union)?
//
// Names are dotted identifiers and may carry a namespace prefix
// ("module:foo/bar", "event:ready").
package typeexpr

import (
	"strings"
	"unicode"

	"github.com/doclet-labs/doclet/internal/derrors"
)

// Op identifies the shape of an expression node.
type Op string

const (
	OpName     Op = "name"     // plain (possibly dotted) type name
	OpAny      Op = "any"      // *
	OpUnknown  Op = "unknown"  // standalone ?
	OpUnion    Op = "union"    // a|b|c
	OpGeneric  Op = "generic"  // Array.<T>, Map<K,V>, T[]
	OpRecord   Op = "record"   // {a: T, b}
	OpFunction Op = "function" // function(a, b): c
)

// Field is one entry of a record type.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value *Expr  `json:"value,omitempty" yaml:"value,omitempty"`
}

// Expr is a parsed type expression node.
type Expr struct {
	Op     Op      `json:"op" yaml:"op"`
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Elems  []*Expr `json:"elems,omitempty" yaml:"elems,omitempty"`
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	Params []*Expr `json:"params,omitempty" yaml:"params,omitempty"`
	Result *Expr   `json:"result,omitempty" yaml:"result,omitempty"`

	// Nullable is nil when unstated, otherwise the value of the '?' or
	// '!' modifier.
	Nullable *bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Optional bool  `json:"optional,omitempty" yaml:"optional,omitempty"`
	Variadic bool  `json:"variadic,omitempty" yaml:"variadic,omitempty"`
}

// Parse parses src into an expression tree. On failure the returned
// error wraps derrors.ErrTypeExpression and names the offending
// position; callers retain the raw text as a fallback.
func Parse(src string) (*Expr, error) {
	p := &parser{src: []rune(strings.TrimSpace(src))}
	if len(p.src) == 0 {
		return nil, p.errorf("empty type expression")
	}
	e, err := p.union()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", string(p.peek()))
	}
	return e, nil
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	err := derrors.Newf(format, args...)
	return derrors.Wrapf(derrors.ErrTypeExpression, "at offset %d: %s", p.pos, err.Error())
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) consume(r rune) bool {
	p.skipSpace()
	if p.peek() == r {
		p.pos++
		return true
	}
	return false
}

func (p *parser) union() (*Expr, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '|' {
		return first, nil
	}
	u := &Expr{Op: OpUnion, Elems: []*Expr{first}}
	for p.consume('|') {
		next, err := p.unary()
		if err != nil {
			return nil, err
		}
		u.Elems = append(u.Elems, next)
	}
	return u, nil
}

func (p *parser) unary() (*Expr, error) {
	p.skipSpace()
	var nullable *bool
	variadic := false
	for {
		if p.hasPrefix("...") {
			p.pos += 3
			variadic = true
			p.skipSpace()
			continue
		}
		if p.peek() == '?' && p.startsType(p.pos+1) {
			p.pos++
			t := true
			nullable = &t
			p.skipSpace()
			continue
		}
		if p.peek() == '!' {
			p.pos++
			f := false
			nullable = &f
			p.skipSpace()
			continue
		}
		break
	}
	e, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if nullable != nil {
		e.Nullable = nullable
	}
	if variadic {
		e.Variadic = true
	}
	return e, nil
}

// startsType reports whether a type expression begins at offset i, used
// to distinguish the nullable prefix from the standalone unknown type.
func (p *parser) startsType(i int) bool {
	for i < len(p.src) && unicode.IsSpace(p.src[i]) {
		i++
	}
	if i >= len(p.src) {
		return false
	}
	r := p.src[i]
	return isNameRune(r) || r == '{' || r == '(' || r == '*' || r == '!' || r == '.'
}

func (p *parser) postfix() (*Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.hasPrefix("[]") {
			p.pos += 2
			e = &Expr{Op: OpGeneric, Name: "Array", Elems: []*Expr{e}}
			continue
		}
		if p.peek() == '=' {
			p.pos++
			e.Optional = true
			continue
		}
		return e, nil
	}
}

func (p *parser) hasPrefix(s string) bool {
	if p.pos+len(s) > len(p.src) {
		return false
	}
	return string(p.src[p.pos:p.pos+len(s)]) == s
}

func (p *parser) primary() (*Expr, error) {
	p.skipSpace()
	switch {
	case p.eof():
		return nil, p.errorf("unexpected end of type expression")
	case p.peek() == '*':
		p.pos++
		return &Expr{Op: OpAny}, nil
	case p.peek() == '?':
		p.pos++
		return &Expr{Op: OpUnknown}, nil
	case p.peek() == '(':
		p.pos++
		e, err := p.union()
		if err != nil {
			return nil, err
		}
		if !p.consume(')') {
			return nil, p.errorf("missing closing parenthesis")
		}
		return e, nil
	case p.peek() == '{':
		return p.record()
	case isNameStart(p.peek()):
		return p.nameOrGeneric()
	default:
		return nil, p.errorf("unexpected %q", string(p.peek()))
	}
}

func (p *parser) nameOrGeneric() (*Expr, error) {
	name := p.name()
	if name == "function" && p.lookingAt('(') {
		return p.function()
	}
	// Generic application: Name<T> or Name.<T>.
	save := p.pos
	p.skipSpace()
	if p.peek() == '.' {
		p.pos++
		p.skipSpace()
		if p.peek() != '<' {
			p.pos = save
			return &Expr{Op: OpName, Name: name}, nil
		}
	}
	if p.peek() != '<' {
		p.pos = save
		return &Expr{Op: OpName, Name: name}, nil
	}
	p.pos++ // '<'
	g := &Expr{Op: OpGeneric, Name: name}
	for {
		arg, err := p.union()
		if err != nil {
			return nil, err
		}
		g.Elems = append(g.Elems, arg)
		if p.consume(',') {
			continue
		}
		if p.consume('>') {
			return g, nil
		}
		return nil, p.errorf("missing closing angle bracket")
	}
}

func (p *parser) lookingAt(r rune) bool {
	i := p.pos
	for i < len(p.src) && unicode.IsSpace(p.src[i]) {
		i++
	}
	return i < len(p.src) && p.src[i] == r
}

func (p *parser) function() (*Expr, error) {
	if !p.consume('(') {
		return nil, p.errorf("expected parameter list after function")
	}
	f := &Expr{Op: OpFunction}
	p.skipSpace()
	if p.peek() != ')' {
		for {
			arg, err := p.union()
			if err != nil {
				return nil, err
			}
			f.Params = append(f.Params, arg)
			if !p.consume(',') {
				break
			}
		}
	}
	if !p.consume(')') {
		return nil, p.errorf("missing closing parenthesis in function type")
	}
	if p.consume(':') {
		res, err := p.union()
		if err != nil {
			return nil, err
		}
		f.Result = res
	}
	return f, nil
}

func (p *parser) record() (*Expr, error) {
	p.pos++ // '{'
	r := &Expr{Op: OpRecord}
	p.skipSpace()
	if p.consume('}') {
		return r, nil
	}
	for {
		p.skipSpace()
		if !isNameStart(p.peek()) {
			return nil, p.errorf("expected record key, found %q", string(p.peek()))
		}
		f := Field{Key: p.name()}
		if p.consume(':') {
			v, err := p.union()
			if err != nil {
				return nil, err
			}
			f.Value = v
		}
		r.Fields = append(r.Fields, f)
		if p.consume(',') {
			continue
		}
		if p.consume('}') {
			return r, nil
		}
		return nil, p.errorf("missing closing brace in record type")
	}
}

// name consumes a dotted identifier, allowing a single namespace prefix
// ("module:", "event:", "external:") and slashes after it.
func (p *parser) name() string {
	start := p.pos
	sawColon := false
	for !p.eof() {
		r := p.src[p.pos]
		if isNameRune(r) {
			p.pos++
			continue
		}
		if r == ':' && !sawColon && p.pos+1 < len(p.src) && isNameRune(p.src[p.pos+1]) {
			sawColon = true
			p.pos++
			continue
		}
		if (r == '/' || r == '.') && p.pos+1 < len(p.src) && isNameRune(p.src[p.pos+1]) {
			if r == '/' && !sawColon {
				break
			}
			if r == '.' {
				// Dotted name segment, unless this is the '.<' generic marker.
				if p.pos+1 < len(p.src) && p.src[p.pos+1] == '<' {
					break
				}
			}
			p.pos++
			continue
		}
		break
	}
	return string(p.src[start:p.pos])
}

func isNameStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '-'
}

// String renders the expression back to canonical source form.
func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	if e.Nullable != nil {
		if *e.Nullable {
			b.WriteString("?")
		} else {
			b.WriteString("!")
		}
	}
	if e.Variadic {
		b.WriteString("...")
	}
	switch e.Op {
	case OpAny:
		b.WriteString("*")
	case OpUnknown:
		b.WriteString("?")
	case OpName:
		b.WriteString(e.Name)
	case OpUnion:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			parts[i] = el.String()
		}
		b.WriteString("(" + strings.Join(parts, "|") + ")")
	case OpGeneric:
		args := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			args[i] = el.String()
		}
		b.WriteString(e.Name + ".<" + strings.Join(args, ", ") + ">")
	case OpRecord:
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			if f.Value != nil {
				parts[i] = f.Key + ": " + f.Value.String()
			} else {
				parts[i] = f.Key
			}
		}
		b.WriteString("{" + strings.Join(parts, ", ") + "}")
	case OpFunction:
		params := make([]string, len(e.Params))
		for i, el := range e.Params {
			params[i] = el.String()
		}
		b.WriteString("function(" + strings.Join(params, ", ") + ")")
		if e.Result != nil {
			b.WriteString(": " + e.Result.String())
		}
	}
	if e.Optional {
		b.WriteString("=")
	}
	return b.String()
}
