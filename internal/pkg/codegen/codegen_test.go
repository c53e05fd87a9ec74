package codegen

import (
	"strings"
	"testing"
)

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("expected code length %d, got %d", CodeLength, len(code))
	}

	for i := 0; i < len(code); i++ {
		if strings.IndexByte(alphabet, code[i]) == -1 {
			t.Fatalf("code contains invalid character %q", code[i])
		}
	}
}

func TestGenerateBatch_InvalidSize(t *testing.T) {
	t.Parallel()

	if _, err := GenerateBatch(0); err == nil {
		t.Fatalf("expected error for invalid batch size")
	}
	if _, err := GenerateBatch(-5); err == nil {
		t.Fatalf("expected error for negative batch size")
	}
}

func TestGenerateBatch_PairwiseDistinct(t *testing.T) {
	t.Parallel()

	codes, err := GenerateBatch(500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codes) != 500 {
		t.Fatalf("expected 500 codes, got %d", len(codes))
	}

	seen := make(map[string]struct{})
	for _, code := range codes {
		if _, exists := seen[code]; exists {
			t.Fatalf("duplicate code generated within batch: %s", code)
		}
		seen[code] = struct{}{}
	}
}
