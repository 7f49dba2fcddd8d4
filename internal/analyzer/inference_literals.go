package analyzer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sampl-lang/sampl/internal/ast"
	"github.com/sampl-lang/sampl/internal/decorated"
	"github.com/sampl-lang/sampl/internal/diagnostics"
	"github.com/sampl-lang/sampl/internal/typesystem"
)

var literalTypes = map[ast.LiteralKind]typesystem.Type{
	ast.UnitLiteral:   typesystem.Unit,
	ast.IntLiteral:    typesystem.Int,
	ast.FloatLiteral:  typesystem.Float,
	ast.BoolLiteral:   typesystem.Bool,
	ast.CharLiteral:   typesystem.Char,
	ast.StringLiteral: typesystem.String,
}

// checkLiteral verifies that the literal text is a value of its claimed kind.
func checkLiteral(lit *ast.Literal) (decorated.Expression, error) {
	valid := true
	switch lit.Kind {
	case ast.UnitLiteral:
		valid = lit.Text == "()"
	case ast.IntLiteral:
		_, err := strconv.ParseInt(lit.Text, 10, 32)
		valid = err == nil
	case ast.FloatLiteral:
		_, err := strconv.ParseFloat(lit.Text, 64)
		valid = err == nil && strings.Contains(lit.Text, ".")
	case ast.BoolLiteral:
		valid = lit.Text == "true" || lit.Text == "false"
	case ast.CharLiteral:
		s, ok := Unescape(lit.Text)
		valid = ok && utf8.RuneCountInString(s) == 1
	case ast.StringLiteral:
		_, valid = Unescape(lit.Text)
	}
	if !valid {
		return nil, diagnostics.NewError(diagnostics.ErrL001, lit.Token, lit.Kind, lit.Text)
	}
	return &decorated.Literal{Kind: lit.Kind, Text: lit.Text, ResolvedType: literalTypes[lit.Kind]}, nil
}

// Unescape decodes the escapes allowed in char and string literals.
func Unescape(text string) (string, bool) {
	if !strings.ContainsRune(text, '\\') {
		return text, true
	}
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(text) {
			return "", false
		}
		switch text[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(text[i])
		default:
			return "", false
		}
	}
	return b.String(), true
}
