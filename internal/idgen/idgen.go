// Package idgen produces the short public identifiers used for class codes,
// quiz ids and result ids.
package idgen

import (
	"errors"
	"math/rand/v2"
	"strings"
)

const (
	Alphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Length      = 6
	MaxAttempts = 64
)

var ErrKeySpaceExhausted = errors.New("could not generate an unused identifier")

func Generate() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(Alphabet[rand.IntN(len(Alphabet))])
	}
	return b.String()
}

// GenerateUnique draws identifiers until exists reports one as free.
func GenerateUnique(exists func(string) bool) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		id := Generate()
		if !exists(id) {
			return id, nil
		}
	}
	return "", ErrKeySpaceExhausted
}

// Normalize upper-cases and trims a code typed by a user.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(Alphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}
