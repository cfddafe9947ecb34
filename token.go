// token defines the tokens produced by the lexer and the keyword and
// operator tables shared by the lexer and parser. Both tables are read-only
// after init so concurrent parses never synchronize.
package sqlparse

// TokenKind classifies a token.
type TokenKind int

const (
	// TokenIllegal is input matching no lexical rule. The lexer never fails
	// by itself. It emits an illegal token whose value is a diagnostic and
	// the parser turns it into a ParseError at the token position.
	TokenIllegal TokenKind = iota
	// TokenEOF is the end of input.
	TokenEOF
	// TokenKeyword is a reserved word such as SELECT, FROM, or WHERE. The
	// value is normalized to upper case.
	TokenKeyword
	// TokenIdentifier is a word that is not a keyword like a table or column
	// name.
	TokenIdentifier
	// TokenQuotedIdentifier is a double quoted identifier. The value holds
	// the text between the quotes with doubled quotes unescaped.
	TokenQuotedIdentifier
	// TokenString is a single quoted text value with doubled quotes
	// unescaped.
	TokenString
	// TokenBitString is a B'...' literal. The value holds only the digits.
	TokenBitString
	// TokenHexString is a X'...' literal. The value holds only the digits.
	TokenHexString
	// TokenInteger is a run of digits with no decimal point or exponent.
	TokenInteger
	// TokenNumeric is a digit run containing a decimal point or exponent.
	// The value is kept as written so no precision is lost before the
	// consumer converts it.
	TokenNumeric
	// TokenOperator is an operator or punctuation such as "<=", "(", ";".
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenIllegal:          "illegal",
	TokenEOF:              "eof",
	TokenKeyword:          "keyword",
	TokenIdentifier:       "identifier",
	TokenQuotedIdentifier: "quoted identifier",
	TokenString:           "string",
	TokenBitString:        "bit string",
	TokenHexString:        "hex string",
	TokenInteger:          "integer",
	TokenNumeric:          "numeric",
	TokenOperator:         "operator",
}

func (k TokenKind) String() string {
	if n, ok := tokenKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Token is one lexical unit with its 1-based source position.
type Token struct {
	Kind  TokenKind
	Value string
	Line  int
	Col   int
}

var keywords = map[string]struct{}{
	"SELECT":     {},
	"DISTINCT":   {},
	"FROM":       {},
	"WHERE":      {},
	"GROUP":      {},
	"BY":         {},
	"HAVING":     {},
	"ORDER":      {},
	"ASC":        {},
	"DESC":       {},
	"LIMIT":      {},
	"OFFSET":     {},
	"UNION":      {},
	"INTERSECT":  {},
	"EXCEPT":     {},
	"JOIN":       {},
	"INNER":      {},
	"LEFT":       {},
	"RIGHT":      {},
	"FULL":       {},
	"OUTER":      {},
	"CROSS":      {},
	"NATURAL":    {},
	"ON":         {},
	"USING":      {},
	"INSERT":     {},
	"INTO":       {},
	"VALUES":     {},
	"DEFAULT":    {},
	"UPDATE":     {},
	"SET":        {},
	"DELETE":     {},
	"CREATE":     {},
	"TABLE":      {},
	"INDEX":      {},
	"TYPE":       {},
	"IF":         {},
	"NOT":        {},
	"EXISTS":     {},
	"AS":         {},
	"ENUM":       {},
	"PRIMARY":    {},
	"KEY":        {},
	"FOREIGN":    {},
	"REFERENCES": {},
	"NULL":       {},
	"UNIQUE":     {},
	"CHECK":      {},
	"CONSTRAINT": {},
	"IDENTITY":   {},
	"IS":         {},
	"LIKE":       {},
	"IN":         {},
	"BETWEEN":    {},
	"AND":        {},
	"OR":         {},
}

// operators2 is matched before operators1 so "<=" wins over "<".
var operators2 = []string{"<=", ">=", "<>", "!="}

const operators1 = "=<>+-*/%(),;.[]"
