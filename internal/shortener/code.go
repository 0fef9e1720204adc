package shortener

import (
	"strings"

	"github.com/jaevor/go-nanoid"
)

const (
	// Alphabet is the set of characters short codes are drawn from.
	Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// CodeLength is the fixed length of every short code.
	CodeLength = 6
)

// CodeGenerator returns a new random short code on every call.
type CodeGenerator func() string

// NewCodeGenerator returns a generator drawing CodeLength characters from
// Alphabet using a cryptographically secure source.
func NewCodeGenerator() (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, CodeLength)
	if err != nil {
		return nil, err
	}

	return CodeGenerator(gen), nil
}

// IsValidCode reports whether code has the shape of a generated short code.
func IsValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}

	for i := range len(code) {
		if !strings.ContainsRune(Alphabet, rune(code[i])) {
			return false
		}
	}

	return true
}
