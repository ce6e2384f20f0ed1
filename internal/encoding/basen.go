package encoding

import (
	"errors"
	"math"
	"strings"
)

// Base36 is the lowercase alphanumeric alphabet used for giveaway identifiers
const Base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	ErrInvalidAlphabet = errors.New("alphabet must contain at least 2 unique single-byte characters")
	ErrInvalidInput    = errors.New("input contains invalid characters")
	ErrNegativeNumber  = errors.New("cannot encode negative numbers")
	ErrOverflow        = errors.New("decoded value overflows int64")
)

// BaseNEncoder handles encoding and decoding of integers using a custom alphabet
type BaseNEncoder struct {
	alphabet  string
	base      int64
	charMap   map[byte]int64
	minLength int
}

// Option configures a BaseNEncoder
type Option func(*BaseNEncoder)

// WithMinLength pads encoded output with the first alphabet character up to n characters
func WithMinLength(n int) Option {
	return func(e *BaseNEncoder) {
		if n >= 0 {
			e.minLength = n
		}
	}
}

// NewBaseNEncoder creates a new encoder with the specified alphabet.
// Without options encoded strings are not padded.
func NewBaseNEncoder(alphabet string, opts ...Option) (*BaseNEncoder, error) {
	if len(alphabet) < 2 {
		return nil, ErrInvalidAlphabet
	}

	charMap := make(map[byte]int64, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c >= 0x80 {
			return nil, ErrInvalidAlphabet
		}
		if _, dup := charMap[c]; dup {
			return nil, ErrInvalidAlphabet
		}
		charMap[c] = int64(i)
	}

	e := &BaseNEncoder{
		alphabet: alphabet,
		base:     int64(len(alphabet)),
		charMap:  charMap,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Encode converts a non-negative integer to a base-N string
func (e *BaseNEncoder) Encode(num int64) (string, error) {
	if num < 0 {
		return "", ErrNegativeNumber
	}

	if num == 0 {
		return strings.Repeat(e.alphabet[:1], max(e.minLength, 1)), nil
	}

	buf := make([]byte, 0, 13)
	for num > 0 {
		buf = append(buf, e.alphabet[num%e.base])
		num /= e.base
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	encoded := string(buf)
	if len(encoded) < e.minLength {
		encoded = strings.Repeat(e.alphabet[:1], e.minLength-len(encoded)) + encoded
	}
	return encoded, nil
}

// Decode converts a base-N string back to an integer.
// Leading padding characters are accepted.
func (e *BaseNEncoder) Decode(encoded string) (int64, error) {
	if encoded == "" {
		return 0, ErrInvalidInput
	}

	var result int64
	for i := 0; i < len(encoded); i++ {
		value, ok := e.charMap[encoded[i]]
		if !ok {
			return 0, ErrInvalidInput
		}
		if result > (math.MaxInt64-value)/e.base {
			return 0, ErrOverflow
		}
		result = result*e.base + value
	}

	return result, nil
}
