package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/sampl-lang/sampl/internal/token"
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

// Tokenize reads the whole input, including the trailing EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
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

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.EQ)
		} else {
			tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.NOT_EQ)
		} else {
			tok = newToken(token.BANG, l.ch, l.line, l.column)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.LTE)
		} else {
			tok = newToken(token.LT, l.ch, l.line, l.column)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.GTE)
		} else {
			tok = newToken(token.GT, l.ch, l.line, l.column)
		}
	case '-':
		if l.peekChar() == '>' {
			tok = l.twoCharToken(token.ARROW)
		} else {
			tok = newToken(token.MINUS, l.ch, l.line, l.column)
		}
	case '&':
		if l.peekChar() == '&' {
			tok = l.twoCharToken(token.AND)
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case '|':
		if l.peekChar() == '|' {
			tok = l.twoCharToken(token.OR)
		} else {
			tok = newToken(token.PIPE, l.ch, l.line, l.column)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, l.line, l.column)
	case '/':
		tok = newToken(token.SLASH, l.ch, l.line, l.column)
	case '%':
		tok = newToken(token.PERCENT, l.ch, l.line, l.column)
	case '^':
		tok = newToken(token.CARET, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, l.line, l.column)
	case ':':
		tok = newToken(token.COLON, l.ch, l.line, l.column)
	case '.':
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case '"':
		return l.readQuoted('"', token.STRING)
	case '\'':
		return l.readQuoted('\'', token.CHAR)
	case 0:
		tok.Lexeme = ""
		tok.Type = token.EOF
		tok.Line = l.line
		tok.Column = l.column
	default:
		if isLetter(l.ch) {
			startLine, startCol := l.line, l.column
			lexeme := l.readIdentifier()
			tok.Lexeme = lexeme
			tok.Type = l.determineIdentifierType(lexeme)
			tok.Literal = lexeme
			tok.Line = startLine
			tok.Column = startCol
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

func (l *Lexer) twoCharToken(tokenType token.TokenType) token.Token {
	line, col := l.line, l.column
	first := l.ch
	l.readChar()
	literal := string(first) + string(l.ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

// readQuoted reads a char or string literal. The literal value is the raw
// content between the quotes; escapes are validated later.
func (l *Lexer) readQuoted(quote rune, tokenType token.TokenType) token.Token {
	startLine, startCol := l.line, l.column
	start := l.position
	l.readChar() // opening quote
	contentStart := l.position
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Literal: "unterminated literal", Line: startLine, Column: startCol}
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				continue
			}
		}
		l.readChar()
	}
	content := l.input[contentStart:l.position]
	l.readChar() // closing quote
	return token.Token{Type: tokenType, Lexeme: l.input[start:l.position], Literal: content, Line: startLine, Column: startCol}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) determineIdentifierType(ident string) token.TokenType {
	if len(ident) == 0 {
		return token.ILLEGAL
	}

	firstChar := ident[0]
	if 'A' <= firstChar && firstChar <= 'Z' {
		return token.IDENT_UPPER
	}

	// If it's lowercase, check if it's a keyword
	return token.LookupIdent(ident)
}

// readNumber reads an Int or Float literal. Range checks happen in the
// analyzer so that malformed literals carry their line.
func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	tokenType := token.INT

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = token.FLOAT
		l.readChar() // .
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	// Letters glued to a number make it malformed; keep them in the lexeme.
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	lexeme := l.input[position:l.position]
	return token.Token{Type: tokenType, Lexeme: lexeme, Literal: lexeme, Line: startLine, Column: startCol}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		// Handle comments
		if l.ch == '/' {
			if l.peekChar() == '/' {
				l.readChar() // consume first /
				l.readChar() // consume second /
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.readChar() // consume /
				l.readChar() // consume *
				for l.ch != 0 {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						break
					}
					l.readChar()
				}
				continue
			}
		}
		break
	}
}
