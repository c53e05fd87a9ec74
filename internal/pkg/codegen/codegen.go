package codegen

import (
	"crypto/rand"
	"fmt"
)

// Alphabet for tag codes. Uppercase-only because codes are printed on
// stickers and typed back by hand; 0/O and 1/I are excluded to avoid
// transcription mistakes.
const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// CodeLength is the length of a generated tag code. 12 characters over
// a 32-character alphabet gives 60 bits, enough that collisions are
// handled by the unique index rather than prevented up front.
const CodeLength = 12

// GenerateCode creates a cryptographically secure random tag code.
func GenerateCode() (string, error) {
	return generate(CodeLength)
}

// GenerateBatch creates n codes that are pairwise distinct within the
// returned slice. Global uniqueness is enforced by the database.
func GenerateBatch(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid batch size: %d", n)
	}

	codes := make([]string, 0, n)
	seen := make(map[string]struct{}, n)

	for len(codes) < n {
		code, err := generate(CodeLength)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}

func generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length: %d", length)
	}

	// Rejection sampling to avoid modulo bias.
	// 224 is the largest multiple of 32 below 256.
	const maxRandomByte = 224

	code := make([]byte, length)
	buf := make([]byte, length*2)
	written := 0

	for written < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read secure random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			code[written] = alphabet[int(b)%len(alphabet)]
			written++
			if written == length {
				break
			}
		}
	}

	return string(code), nil
}
