package pylit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/filmrec/internal/domain"
)

// maxDepth bounds container nesting.
const maxDepth = 64

// Decode parses a single literal. Trailing non-space input is an error.
// Errors are *domain.ParseError.
func Decode(src string) (Value, error) {
	p := &parser{src: src}
	p.skipSpace()
	if p.eof() {
		return Value{}, p.errorf("empty input")
	}
	v, err := p.value(0)
	if err != nil {
		return Value{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return Value{}, p.errorf("unexpected %q after value", p.peek())
	}
	return v, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) errorf(format string, args ...any) error {
	return &domain.ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value(depth int) (Value, error) {
	if depth > maxDepth {
		return Value{}, p.errorf("nesting deeper than %d", maxDepth)
	}
	if p.eof() {
		return Value{}, p.errorf("unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '[':
		items, err := p.sequence(']', depth)
		if err != nil {
			return Value{}, err
		}
		return ListValue(items), nil
	case c == '(':
		items, err := p.sequence(')', depth)
		if err != nil {
			return Value{}, err
		}
		return ListValue(items), nil
	case c == '{':
		return p.dict(depth)
	case c == '\'' || c == '"':
		s, err := p.str()
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentStart(c):
		return p.ident()
	default:
		return Value{}, p.errorf("unexpected %q", c)
	}
}

// sequence parses comma separated values up to closer; a trailing comma is allowed.
func (p *parser) sequence(closer byte, depth int) ([]Value, error) {
	p.pos++ // opener
	items := []Value{}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated sequence")
		}
		if p.peek() == closer {
			p.pos++
			return items, nil
		}
		v, err := p.value(depth + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated sequence")
		}
		switch p.peek() {
		case ',':
			p.pos++
		case closer:
		default:
			return nil, p.errorf("expected ',' or %q, got %q", closer, p.peek())
		}
	}
}

func (p *parser) dict(depth int) (Value, error) {
	p.pos++ // {
	m := make(map[string]Value)
	for {
		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("unterminated dict")
		}
		if p.peek() == '}' {
			p.pos++
			return DictValue(m), nil
		}
		if c := p.peek(); c != '\'' && c != '"' {
			return Value{}, p.errorf("dict key must be a string, got %q", c)
		}
		key, err := p.str()
		if err != nil {
			return Value{}, err
		}
		p.skipSpace()
		if p.eof() || p.peek() != ':' {
			return Value{}, p.errorf("expected ':' after key %q", key)
		}
		p.pos++
		p.skipSpace()
		v, err := p.value(depth + 1)
		if err != nil {
			return Value{}, err
		}
		m[key] = v
		p.skipSpace()
		if p.eof() {
			return Value{}, p.errorf("unterminated dict")
		}
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return Value{}, p.errorf("expected ',' or '}', got %q", p.peek())
		}
	}
}

func (p *parser) str() (string, error) {
	quote := p.peek()
	start := p.pos
	p.pos++
	var b strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return "", p.errorf("unterminated string")
		}
		c := p.peek()
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\n':
			return "", p.errorf("newline in string")
		case '\\':
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

// escape consumes a backslash sequence. Unknown escapes are kept verbatim.
func (p *parser) escape(b *strings.Builder) error {
	p.pos++ // backslash
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.peek()
	p.pos++
	switch c {
	case '\\', '\'', '"':
		b.WriteByte(c)
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '\n':
		// line continuation
	case 'x':
		return p.hexRune(b, 2)
	case 'u':
		return p.hexRune(b, 4)
	case 'U':
		return p.hexRune(b, 8)
	default:
		b.WriteByte('\\')
		b.WriteByte(c)
	}
	return nil
}

func (p *parser) hexRune(b *strings.Builder, n int) error {
	if p.pos+n > len(p.src) {
		return p.errorf("truncated \\x/\\u escape")
	}
	code, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
	if err != nil {
		return p.errorf("invalid hex escape %q", p.src[p.pos:p.pos+n])
	}
	r := rune(code)
	if !utf8.ValidRune(r) {
		return p.errorf("invalid code point %U", r)
	}
	b.WriteRune(r)
	p.pos += n
	return nil
}

func (p *parser) number() (Value, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	isFloat := false
	for !p.eof() {
		c := p.peek()
		switch {
		case c >= '0' && c <= '9', c == '_':
		case c == '.', c == 'e', c == 'E':
			isFloat = true
		case (c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E'):
		default:
			return p.finishNumber(start, isFloat)
		}
		p.pos++
	}
	return p.finishNumber(start, isFloat)
}

func (p *parser) finishNumber(start int, isFloat bool) (Value, error) {
	lit := strings.ReplaceAll(p.src[start:p.pos], "_", "")
	if !isFloat {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return IntValue(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.pos = start
		return Value{}, p.errorf("invalid number %q", lit)
	}
	return FloatValue(f), nil
}

func (p *parser) ident() (Value, error) {
	start := p.pos
	for !p.eof() && (isIdentStart(p.peek()) || (p.peek() >= '0' && p.peek() <= '9')) {
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "True":
		return BoolValue(true), nil
	case "False":
		return BoolValue(false), nil
	case "None":
		return NoneValue(), nil
	default:
		p.pos = start
		return Value{}, p.errorf("unknown name %q", word)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
