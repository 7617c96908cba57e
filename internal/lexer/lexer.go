package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/reflint/reflint/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	var tok token.Token

	switch l.ch {
	case '&':
		if l.peekChar() == '&' {
			col := l.column
			l.readChar()
			tok = token.Token{Type: token.ANDAND, Lexeme: "&&", Literal: "&&", Line: l.line, Column: col}
		} else {
			tok = l.newToken(token.AMP)
		}
	case '<':
		tok = l.newToken(token.LT)
	case '>':
		if l.peekChar() == '>' {
			col := l.column
			l.readChar()
			tok = token.Token{Type: token.SHR, Lexeme: ">>", Literal: ">>", Line: l.line, Column: col}
		} else {
			tok = l.newToken(token.GT)
		}
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '[':
		tok = l.newToken(token.LBRACKET)
	case ']':
		tok = l.newToken(token.RBRACKET)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case ',':
		tok = l.newToken(token.COMMA)
	case ';':
		tok = l.newToken(token.SEMI)
	case ':':
		if l.peekChar() == ':' {
			col := l.column
			l.readChar()
			tok = token.Token{Type: token.PATHSEP, Lexeme: "::", Literal: "::", Line: l.line, Column: col}
		} else {
			tok = l.newToken(token.COLON)
		}
	case '-':
		if l.peekChar() == '>' {
			col := l.column
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: l.line, Column: col}
		} else {
			tok = l.newToken(token.ILLEGAL)
		}
	case '*':
		tok = l.newToken(token.STAR)
	case '#':
		tok = l.newToken(token.HASH)
	case '!':
		tok = l.newToken(token.BANG)
	case '=':
		tok = l.newToken(token.ASSIGN)
	case '+':
		tok = l.newToken(token.PLUS)
	case '?':
		tok = l.newToken(token.QUESTION)
	case '.':
		if l.peekChar() == '.' {
			line, col := l.line, l.column
			l.readChar()
			lexeme := ".."
			if l.peekChar() == '.' {
				l.readChar()
				lexeme = "..."
			}
			tok = token.Token{Type: token.DOTDOTDOT, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
		} else {
			tok = l.newToken(token.ILLEGAL)
		}
	case '\'':
		return l.readLifetimeOrChar()
	case '"':
		return l.readString()
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: l.line, Column: l.column}
	default:
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.newToken(token.ILLEGAL)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType token.TokenType) token.Token {
	s := string(l.ch)
	return token.Token{Type: tokenType, Lexeme: s, Literal: s, Line: l.line, Column: l.column}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			depth := 1
			for depth > 0 && l.ch != 0 {
				if l.ch == '/' && l.peekChar() == '*' {
					depth++
					l.readChar()
				} else if l.ch == '*' && l.peekChar() == '/' {
					depth--
					l.readChar()
				}
				l.readChar()
			}
			continue
		}
		return
	}
}

// readLifetimeOrChar disambiguates 'a (lifetime) from 'a' (char literal).
// A quote followed by identifier chars and no closing quote is a lifetime.
// Char literals are consumed whole so braces inside them cannot confuse
// body skipping.
func (l *Lexer) readLifetimeOrChar() token.Token {
	line, col := l.line, l.column

	if isIdentStart(l.peekChar()) {
		l.readChar() // move onto the first ident char
		start := l.position
		for isIdentPart(l.ch) {
			l.readChar()
		}
		name := l.input[start:l.position]
		if l.ch == '\'' && utf8.RuneCountInString(name) == 1 {
			// 'a' is a char literal, not a lifetime
			l.readChar()
			return token.Token{Type: token.CHAR, Lexeme: "'" + name + "'", Literal: name, Line: line, Column: col}
		}
		return token.Token{Type: token.LIFETIME, Lexeme: "'" + name, Literal: name, Line: line, Column: col}
	}

	// escape or symbol char literal: '\n', '{', '\''
	l.readChar() // past the opening quote
	if l.ch == '\\' {
		l.readChar()
	}
	lit := string(l.ch)
	l.readChar()
	if l.ch == '\'' {
		l.readChar()
	}
	return token.Token{Type: token.CHAR, Lexeme: "'" + lit + "'", Literal: lit, Line: line, Column: col}
}

func (l *Lexer) readString() token.Token {
	line, col := l.line, l.column
	l.readChar() // past the opening quote
	start := l.position
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	lit := l.input[start:l.position]
	if l.ch == '"' {
		l.readChar()
	}
	return token.Token{Type: token.STRING, Lexeme: `"` + lit + `"`, Literal: lit, Line: line, Column: col}
}

func (l *Lexer) readIdentifier() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	ident := l.input[start:l.position]
	return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
}

func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.column
	start := l.position
	// numeric suffixes (42usize) are consumed together with the digits
	for unicode.IsDigit(l.ch) || isIdentPart(l.ch) {
		l.readChar()
	}
	num := l.input[start:l.position]
	return token.Token{Type: token.INT, Lexeme: num, Literal: num, Line: line, Column: col}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
