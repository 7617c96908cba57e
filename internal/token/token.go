package token

type TokenType string

// Token is a single lexeme with its source position. Line and Column are
// 1-based.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers and literals
	IDENT    = "IDENT"    // foo, i32, Vec
	LIFETIME = "LIFETIME" // 'a, 'static, '_  (Literal holds the name without the quote)
	INT      = "INT"      // 42 (array lengths)
	STRING   = "STRING"   // "..." (only so body skipping stays brace-safe)
	CHAR     = "CHAR"     // 'x'

	// Punctuation
	AMP       = "&"
	ANDAND    = "&&"
	LT        = "<"
	GT        = ">"
	SHR       = ">>" // closes two nested generic lists
	LPAREN    = "("
	RPAREN    = ")"
	LBRACKET  = "["
	RBRACKET  = "]"
	LBRACE    = "{"
	RBRACE    = "}"
	COMMA     = ","
	SEMI      = ";"
	COLON     = ":"
	PATHSEP   = "::"
	ARROW     = "->"
	STAR      = "*"
	HASH      = "#"
	BANG      = "!"
	ASSIGN    = "="
	PLUS      = "+"
	QUESTION  = "?"
	DOTDOTDOT = "..."

	// Keywords
	FN         = "FN"
	IMPL       = "IMPL"
	TRAIT      = "TRAIT"
	MOD        = "MOD"
	PUB        = "PUB"
	CRATE      = "CRATE"
	MUT        = "MUT"
	CONST      = "CONST"
	UNSAFE     = "UNSAFE"
	ASYNC      = "ASYNC"
	EXTERN     = "EXTERN"
	SELFKW     = "SELF"  // self
	SELFTYPE   = "SELFT" // Self
	DYN        = "DYN"
	WHERE      = "WHERE"
	FOR        = "FOR"
	UNDERSCORE = "_"
)

var keywords = map[string]TokenType{
	"fn":     FN,
	"impl":   IMPL,
	"trait":  TRAIT,
	"mod":    MOD,
	"pub":    PUB,
	"crate":  CRATE,
	"mut":    MUT,
	"const":  CONST,
	"unsafe": UNSAFE,
	"async":  ASYNC,
	"extern": EXTERN,
	"self":   SELFKW,
	"Self":   SELFTYPE,
	"dyn":    DYN,
	"where":  WHERE,
	"for":    FOR,
	"_":      UNDERSCORE,
}

// LookupIdent maps an identifier to its keyword type, or IDENT.
// Keywords that only matter inside type expressions ("impl Trait") are
// resolved by the parser from context, not here.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
