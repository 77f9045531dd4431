package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	tokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenIdent
	TokenBool
	TokenOperator
	TokenLeftParen
	TokenRightParen
	TokenComma
)

// Token is a lexed unit of input.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

var operators = []string{
	"&&", "||", "==", "!=", "<=", ">=",
	"+", "-", "*", "/", "%", "<", ">", "!",
}

// lex splits the input into tokens. Identifiers may contain dots so that
// configuration keys can be referenced directly in expressions.
func lex(input string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(input) {
		r, width := utf8.DecodeRuneInString(input[i:])
		switch {
		case unicode.IsSpace(r):
			i += width
		case r == '(':
			tokens = append(tokens, Token{TokenLeftParen, "(", i})
			i++
		case r == ')':
			tokens = append(tokens, Token{TokenRightParen, ")", i})
			i++
		case r == ',':
			tokens = append(tokens, Token{TokenComma, ",", i})
			i++
		case r == '\'' || r == '"':
			quote := input[i]
			j := i + 1
			var sb strings.Builder
			for j < len(input) && input[j] != quote {
				if input[j] == '\\' && j+1 < len(input) {
					j++
				}
				sb.WriteByte(input[j])
				j++
			}
			if j >= len(input) {
				return nil, fmt.Errorf("unterminated string at %d", i)
			}
			tokens = append(tokens, Token{TokenString, sb.String(), i})
			i = j + 1
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(input) && unicode.IsDigit(rune(input[i+1]))):
			j := i
			for j < len(input) && (unicode.IsDigit(rune(input[j])) || input[j] == '.') {
				j++
			}
			tokens = append(tokens, Token{TokenNumber, input[i:j], i})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(input) {
				c, w := utf8.DecodeRuneInString(input[j:])
				if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '.' {
					break
				}
				j += w
			}
			word := input[i:j]
			if word == "true" || word == "false" {
				tokens = append(tokens, Token{TokenBool, word, i})
			} else {
				tokens = append(tokens, Token{TokenIdent, word, i})
			}
			i = j
		default:
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(input[i:], op) {
					tokens = append(tokens, Token{TokenOperator, op, i})
					i += len(op)
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("unexpected character %q at %d", r, i)
			}
		}
	}
	tokens = append(tokens, Token{tokenEOF, "", len(input)})
	return tokens, nil
}
