package html

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenStartTag:
		return "StartTag"
	case TokenEndTag:
		return "EndTag"
	case TokenText:
		return "Text"
	case TokenEOF:
		return "EOF"
	}
	return "Unknown"
}

// Attribute is a single name/value pair in source order. Names may repeat.
type Attribute struct {
	Name  string
	Value string
}

type Token struct {
	Type    TokenType
	TagName string
	Attrs   []Attribute
	Text    string
}

// Tokenizer turns markup into start-tag, end-tag and text events.
// Comments, doctypes and processing instructions are skipped. A
// self-closing tag is reported as a start tag followed by an end tag.
// Entity references are decoded in text and attribute values. Only script
// and style hold raw text; every other element's content is tokenized, so
// markup inside noscript, textarea, title or plaintext still yields tags.
type Tokenizer struct {
	z       *xhtml.Tokenizer
	pending *Token
	done    bool
}

func NewTokenizer(markup string) *Tokenizer {
	return &Tokenizer{z: xhtml.NewTokenizer(strings.NewReader(markup))}
}

// NextToken returns the next event. Once TokenEOF has been returned every
// further call returns TokenEOF again. Malformed input never produces an
// error; the underlying tokenizer recovers and keeps going.
func (t *Tokenizer) NextToken() Token {
	if t.pending != nil {
		tok := *t.pending
		t.pending = nil
		return tok
	}
	if t.done {
		return Token{Type: TokenEOF}
	}
	for {
		switch t.z.Next() {
		case xhtml.ErrorToken:
			// io.EOF or a reader error; either way the stream is over.
			t.done = true
			return Token{Type: TokenEOF}
		case xhtml.TextToken:
			return Token{Type: TokenText, Text: string(t.z.Text())}
		case xhtml.StartTagToken:
			tok := t.readTag(TokenStartTag)
			if tok.TagName != "script" && tok.TagName != "style" {
				t.z.NextIsNotRawText()
			}
			return tok
		case xhtml.EndTagToken:
			name, _ := t.z.TagName()
			return Token{Type: TokenEndTag, TagName: string(name)}
		case xhtml.SelfClosingTagToken:
			tok := t.readTag(TokenStartTag)
			t.pending = &Token{Type: TokenEndTag, TagName: tok.TagName}
			return tok
		default:
			// comments and doctypes
			continue
		}
	}
}

func (t *Tokenizer) readTag(typ TokenType) Token {
	name, hasAttr := t.z.TagName()
	tok := Token{Type: typ, TagName: string(name)}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = t.z.TagAttr()
		tok.Attrs = append(tok.Attrs, Attribute{Name: string(key), Value: string(val)})
	}
	return tok
}
