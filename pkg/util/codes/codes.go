// Package codes generates human-typeable random codes, such as the
// verification code printed on every prescription.
package codes

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrInvalidLength = errors.New("invalid code length")
	ErrEmptyCharset  = errors.New("charset cannot be empty")
)

// Generator produces codes of a fixed length from a fixed charset.
type Generator struct {
	length  int
	charset string
}

// New builds a Generator from cfg, applying defaults for unset fields.
func New(cfg Config) (*Generator, error) {
	g := &Generator{length: cfg.Length, charset: cfg.GetCharset()}
	if g.length == 0 {
		g.length = DefaultConfig().Length
	}
	if g.length < 1 {
		return nil, ErrInvalidLength
	}
	return g, nil
}

// Generate returns a new random code.
func (g *Generator) Generate() (string, error) {
	return GenerateCode(g.length, g.charset)
}

// GenerateCode creates a code of the given length from charset.
func GenerateCode(length int, charset string) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}
	if charset == "" {
		return "", ErrEmptyCharset
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}

// FormatCode groups a code with dashes for readability.
// e.g., "ABCD1234" -> "ABCD-1234" with groupSize=4
func FormatCode(code string, groupSize int) string {
	if groupSize < 1 || len(code) <= groupSize {
		return code
	}

	var parts []string
	for i := 0; i < len(code); i += groupSize {
		end := min(i+groupSize, len(code))
		parts = append(parts, code[i:end])
	}
	return strings.Join(parts, "-")
}

// ParseCode strips formatting (dashes, spaces) and uppercases a code.
func ParseCode(formatted string) string {
	code := strings.ReplaceAll(formatted, "-", "")
	code = strings.ReplaceAll(code, " ", "")
	return strings.ToUpper(strings.TrimSpace(code))
}
