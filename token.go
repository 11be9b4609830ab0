package quarry

import (
	"strings"
	"unicode"
)

// TokenKind classifies a lexical token of a SQL fragment.
type TokenKind uint8

// Token kinds.
const (
	// TokenQuoted is a quoted run, delimiters included. Quote characters
	// are ` ' " and [ (closed by ]); a doubled closing delimiter or a
	// backslash escapes inside the run.
	TokenQuoted TokenKind = iota
	// TokenUnquoted is a word of alphanumerics, _ and $; $ cannot start
	// a word.
	TokenUnquoted
	// TokenSpace is a run of whitespace.
	TokenSpace
	// TokenPunctuation is any single other character.
	TokenPunctuation
)

// Token is one lexical token. Concatenating the Text of all tokens
// reproduces the input exactly.
type Token struct {
	Kind TokenKind
	Text string
}

func closingDelimiter(open rune) rune {
	if open == '[' {
		return ']'
	}
	return open
}

func isUnquotedChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// Tokenize splits a SQL fragment into quoted runs, words, whitespace and
// punctuation. It never fails: an unterminated quote swallows the rest
// of the input as one quoted token.
func Tokenize(input string) []Token {
	var tokens []Token
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			start := i
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenSpace, Text: string(runes[start:i])})
		case r == '`' || r == '\'' || r == '"' || r == '[':
			close := closingDelimiter(r)
			start := i
			i++
			for i < len(runes) {
				switch runes[i] {
				case '\\':
					i += 2
					continue
				case close:
					if i+1 < len(runes) && runes[i+1] == close {
						i += 2
						continue
					}
					i++
				default:
					i++
					continue
				}
				break
			}
			if i > len(runes) {
				i = len(runes)
			}
			tokens = append(tokens, Token{Kind: TokenQuoted, Text: string(runes[start:i])})
		case isUnquotedChar(r) && r != '$':
			start := i
			for i < len(runes) && isUnquotedChar(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenUnquoted, Text: string(runes[start:i])})
		default:
			tokens = append(tokens, Token{Kind: TokenPunctuation, Text: string(r)})
			i++
		}
	}
	return tokens
}

// tokensString reassembles a token slice.
func tokensString(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
