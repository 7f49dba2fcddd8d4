package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT       TokenType = "IDENT"       // add, x
	IDENT_UPPER TokenType = "IDENT_UPPER" // Pair, Some
	INT         TokenType = "INT"
	FLOAT       TokenType = "FLOAT"
	CHAR        TokenType = "CHAR"
	STRING      TokenType = "STRING"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	CARET    TokenType = "^"
	BANG     TokenType = "!"
	LT       TokenType = "<"
	GT       TokenType = ">"
	LTE      TokenType = "<="
	GTE      TokenType = ">="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	AND      TokenType = "&&"
	OR       TokenType = "||"
	ARROW    TokenType = "->"

	// Delimiters
	COMMA      TokenType = ","
	SEMICOLON  TokenType = ";"
	COLON      TokenType = ":"
	DOT        TokenType = "."
	PIPE       TokenType = "|"
	UNDERSCORE TokenType = "_"
	LPAREN     TokenType = "("
	RPAREN     TokenType = ")"
	LBRACE     TokenType = "{"
	RBRACE     TokenType = "}"

	// Keywords
	CLASS   TokenType = "CLASS"
	PRIVATE TokenType = "PRIVATE"
	VAL     TokenType = "VAL"
	LET     TokenType = "LET"
	FUN     TokenType = "FUN"
	OF      TokenType = "OF"
	MATCH   TokenType = "MATCH"
	WITH    TokenType = "WITH"
	THROW   TokenType = "THROW"
	IF      TokenType = "IF"
	THEN    TokenType = "THEN"
	ELSE    TokenType = "ELSE"
	TRY     TokenType = "TRY"
	CATCH   TokenType = "CATCH"
	TRUE    TokenType = "TRUE"
	FALSE   TokenType = "FALSE"
)

var keywords = map[string]TokenType{
	"class":   CLASS,
	"private": PRIVATE,
	"val":     VAL,
	"let":     LET,
	"fun":     FUN,
	"of":      OF,
	"match":   MATCH,
	"with":    WITH,
	"throw":   THROW,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"try":     TRY,
	"catch":   CATCH,
	"true":    TRUE,
	"false":   FALSE,
	"_":       UNDERSCORE,
}

// LookupIdent checks the keywords table for a lowercase identifier.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
