package buildconf

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// SyntaxError is returned when a JS config cannot be reduced to a literal.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// requireCall is a require('<id>') expression, optionally invoked with arguments.
type requireCall struct {
	ID   string
	Args []any
}

// jsLiteral is the object exported by a JS config file.
type jsLiteral struct {
	values map[string]any
	lines  map[string]int // top-level key -> line
}

type jsToken struct {
	tt   js.TokenType
	text string
	line int
}

var identName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// maxDepth bounds nesting of objects and arrays.
const maxDepth = 64

// extractLiteral finds the value assigned to module.exports (or export default)
// and converts it to plain Go values.
func extractLiteral(src []byte) (*jsLiteral, error) {
	toks, err := tokenizeJS(src)
	if err != nil {
		return nil, err
	}

	p := &literalParser{toks: toks}
	if !p.seekExport() {
		return nil, &SyntaxError{Msg: "no module.exports or export default assignment found"}
	}

	start := p.peek()
	if start.text != "{" {
		return nil, &SyntaxError{Line: start.line, Msg: "exported value must be an object literal"}
	}
	p.next()

	lit := &jsLiteral{lines: make(map[string]int)}
	values, err := p.parseObject(1, lit.lines)
	if err != nil {
		return nil, err
	}
	lit.values = values
	return lit, nil
}

// tokenizeJS lexes src, dropping whitespace and comments.
func tokenizeJS(src []byte) ([]jsToken, error) {
	l := js.NewLexer(parse.NewInputBytes(src))
	line := 1

	var toks []jsToken
	for {
		tt, data := l.Next()
		if tt == js.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, &SyntaxError{Line: line, Msg: err.Error()}
			}
			break
		}

		switch tt {
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
			line += bytes.Count(data, []byte("\n"))
			continue
		}

		toks = append(toks, jsToken{tt: tt, text: string(data), line: line})
		line += bytes.Count(data, []byte("\n"))
	}

	return toks, nil
}

type literalParser struct {
	toks []jsToken
	pos  int
}

func (p *literalParser) peek() jsToken {
	if p.pos >= len(p.toks) {
		last := 0
		if len(p.toks) > 0 {
			last = p.toks[len(p.toks)-1].line
		}
		return jsToken{tt: js.ErrorToken, line: last}
	}
	return p.toks[p.pos]
}

func (p *literalParser) next() jsToken {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *literalParser) textAt(offset int) string {
	if p.pos+offset >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos+offset].text
}

// seekExport advances past "module.exports =" or "export default".
func (p *literalParser) seekExport() bool {
	for ; p.pos < len(p.toks); p.pos++ {
		if p.textAt(0) == "module" && p.textAt(1) == "." && p.textAt(2) == "exports" && p.textAt(3) == "=" {
			p.pos += 4
			return true
		}
		if p.textAt(0) == "export" && p.textAt(1) == "default" {
			p.pos += 2
			return true
		}
	}
	return false
}

func (p *literalParser) expect(text string) error {
	tok := p.next()
	if tok.text != text {
		return p.unexpected(tok, fmt.Sprintf("expected %q", text))
	}
	return nil
}

func (p *literalParser) unexpected(tok jsToken, want string) error {
	if tok.tt == js.ErrorToken {
		return &SyntaxError{Line: tok.line, Msg: "unexpected end of file, " + want}
	}
	return &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("unexpected %q, %s", tok.text, want)}
}

// parseObject parses properties up to the closing brace. The opening brace
// has been consumed. lines, when non-nil, receives each key's line.
func (p *literalParser) parseObject(depth int, lines map[string]int) (map[string]any, error) {
	if depth > maxDepth {
		return nil, &SyntaxError{Line: p.peek().line, Msg: "nesting too deep"}
	}

	obj := make(map[string]any)
	for {
		tok := p.next()
		if tok.text == "}" {
			return obj, nil
		}

		var key string
		switch {
		case isStringToken(tok.text):
			s, err := unquoteJS(tok.text)
			if err != nil {
				return nil, &SyntaxError{Line: tok.line, Msg: err.Error()}
			}
			key = s
		case isNumberToken(tok.text):
			n, err := parseNumber(tok.text)
			if err != nil {
				return nil, &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("invalid number %q", tok.text)}
			}
			key = numberKey(n)
		case identName.MatchString(tok.text):
			key = tok.text
		case tok.text == "...":
			return nil, &SyntaxError{Line: tok.line, Msg: "spread syntax is not supported"}
		case tok.text == "[":
			return nil, &SyntaxError{Line: tok.line, Msg: "computed property names are not supported"}
		default:
			return nil, p.unexpected(tok, "expected property name")
		}

		sep := p.next()
		if sep.text != ":" {
			if sep.text == "," || sep.text == "}" {
				return nil, &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("shorthand property %q is not supported", key)}
			}
			return nil, p.unexpected(sep, "expected \":\"")
		}

		value, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		obj[key] = value
		if lines != nil {
			lines[key] = tok.line
		}

		switch end := p.next(); end.text {
		case ",":
		case "}":
			return obj, nil
		default:
			return nil, p.unexpected(end, "expected \",\" or \"}\"")
		}
	}
}

// parseArray parses elements up to the closing bracket.
func (p *literalParser) parseArray(depth int) ([]any, error) {
	if depth > maxDepth {
		return nil, &SyntaxError{Line: p.peek().line, Msg: "nesting too deep"}
	}

	list := []any{}
	for {
		if p.peek().text == "]" {
			p.next()
			return list, nil
		}

		value, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		list = append(list, value)

		switch end := p.next(); end.text {
		case ",":
		case "]":
			return list, nil
		default:
			return nil, p.unexpected(end, "expected \",\" or \"]\"")
		}
	}
}

func (p *literalParser) parseValue(depth int) (any, error) {
	tok := p.next()
	switch {
	case tok.text == "{":
		return p.parseObject(depth+1, nil)
	case tok.text == "[":
		return p.parseArray(depth + 1)
	case isStringToken(tok.text):
		s, err := unquoteJS(tok.text)
		if err != nil {
			return nil, &SyntaxError{Line: tok.line, Msg: err.Error()}
		}
		return s, nil
	case strings.HasPrefix(tok.text, "`"):
		if strings.Contains(tok.text, "${") || !strings.HasSuffix(tok.text, "`") || len(tok.text) < 2 {
			return nil, &SyntaxError{Line: tok.line, Msg: "template literals with substitutions are not supported"}
		}
		return unquoteJS(tok.text)
	case tok.text == "-" && isNumberToken(p.peek().text):
		n, err := parseNumber(p.next().text)
		if err != nil {
			return nil, &SyntaxError{Line: tok.line, Msg: err.Error()}
		}
		return -n, nil
	case isNumberToken(tok.text):
		n, err := parseNumber(tok.text)
		if err != nil {
			return nil, &SyntaxError{Line: tok.line, Msg: err.Error()}
		}
		return n, nil
	case tok.text == "true":
		return true, nil
	case tok.text == "false":
		return false, nil
	case tok.text == "null":
		return nil, nil
	case tok.text == "require" && p.peek().text == "(":
		return p.parseRequire(tok, depth)
	case tok.tt == js.ErrorToken:
		return nil, p.unexpected(tok, "expected value")
	default:
		return nil, &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("unsupported expression starting at %q", tok.text)}
	}
}

// parseRequire parses require('<id>') and an optional immediate call, as in
// require('@tailwindcss/typography')({ className: 'prose' }).
func (p *literalParser) parseRequire(start jsToken, depth int) (any, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	arg := p.next()
	if !isStringToken(arg.text) {
		return nil, &SyntaxError{Line: start.line, Msg: "require() argument must be a string literal"}
	}
	id, err := unquoteJS(arg.text)
	if err != nil {
		return nil, &SyntaxError{Line: arg.line, Msg: err.Error()}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}

	call := requireCall{ID: id}
	if p.peek().text != "(" {
		return call, nil
	}
	p.next()
	for {
		if p.peek().text == ")" {
			p.next()
			return call, nil
		}
		value, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, value)

		switch end := p.next(); end.text {
		case ",":
		case ")":
			return call, nil
		default:
			return nil, p.unexpected(end, "expected \",\" or \")\"")
		}
	}
}

func isStringToken(text string) bool {
	return len(text) >= 2 && (text[0] == '\'' || text[0] == '"')
}

func isNumberToken(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	return (c >= '0' && c <= '9') || (c == '.' && len(text) > 1)
}

func parseNumber(text string) (float64, error) {
	clean := strings.ReplaceAll(text, "_", "")
	if n, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return float64(n), nil
	}
	return strconv.ParseFloat(clean, 64)
}

// numberKey formats a numeric property name the way JS converts it to a
// string key: {0x10: 1, 1.50: 2} has the keys "16" and "1.5".
func numberKey(n float64) string {
	if abs := math.Abs(n); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// unquoteJS decodes a single, double or backtick quoted JS string literal.
func unquoteJS(text string) (string, error) {
	if len(text) < 2 {
		return "", fmt.Errorf("malformed string literal %s", text)
	}
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("unterminated escape in %s", text)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case 'x':
			if i+3 > len(body) {
				return "", fmt.Errorf("invalid \\x escape in %s", text)
			}
			r, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape in %s", text)
			}
			b.WriteRune(rune(r))
			i += 2
		case 'u':
			r, n, err := decodeUnicodeEscape(body[i+1:])
			if err != nil {
				return "", fmt.Errorf("%w in %s", err, text)
			}
			b.WriteRune(r)
			i += n
		default:
			// \\ \' \" \` and identity escapes
			r, size := utf8.DecodeRuneInString(body[i:])
			b.WriteRune(r)
			i += size - 1
		}
	}
	return b.String(), nil
}

// decodeUnicodeEscape decodes the part after "\u": either XXXX or {X...}.
// It returns the rune and the number of bytes consumed.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, fmt.Errorf("invalid \\u{} escape")
		}
		r, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || r > utf8.MaxRune {
			return 0, 0, fmt.Errorf("invalid \\u{} escape")
		}
		return rune(r), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("invalid \\u escape")
	}
	r, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid \\u escape")
	}
	return rune(r), 4, nil
}
