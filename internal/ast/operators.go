package ast

type BinaryOperator int

const (
	MUL BinaryOperator = iota
	DIV
	MOD
	PLUS
	MINUS
	STR_CONCAT
	LT
	LE
	GT
	GE
	STRUCT_EQ
	STRUCT_NE
	AND
	OR
)

var operatorSymbols = map[BinaryOperator]string{
	MUL:        "*",
	DIV:        "/",
	MOD:        "%",
	PLUS:       "+",
	MINUS:      "-",
	STR_CONCAT: "^",
	LT:         "<",
	LE:         "<=",
	GT:         ">",
	GE:         ">=",
	STRUCT_EQ:  "==",
	STRUCT_NE:  "!=",
	AND:        "&&",
	OR:         "||",
}

func (op BinaryOperator) String() string {
	return operatorSymbols[op]
}

// OperatorFromSymbol maps source text back to an operator.
func OperatorFromSymbol(symbol string) (BinaryOperator, bool) {
	for op, s := range operatorSymbols {
		if s == symbol {
			return op, true
		}
	}
	return 0, false
}

// Precedence of the operator; higher binds tighter.
func (op BinaryOperator) Precedence() int {
	switch op {
	case OR:
		return 3
	case AND:
		return 4
	case STRUCT_EQ, STRUCT_NE:
		return 5
	case LT, LE, GT, GE:
		return 6
	case STR_CONCAT:
		return 7
	case PLUS, MINUS:
		return 8
	default:
		return 9
	}
}
