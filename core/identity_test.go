package core

import (
	"encoding/json"
	"errors"
	"testing"
)

// Requirement: ParseProvider accepts registration ids in any case and
// rejects everything outside the supported set.
func TestParseProvider(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Provider
		wantErr bool
	}{
		{name: "kakao lowercase", input: "kakao", want: ProviderKakao},
		{name: "google mixed case", input: "Google", want: ProviderGoogle},
		{name: "naver uppercase", input: "NAVER", want: ProviderNaver},
		{name: "surrounding whitespace", input: "  kakao  ", want: ProviderKakao},
		{name: "unknown provider", input: "github", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseProvider(test.input)

			if (err != nil) != test.wantErr {
				t.Fatalf("ParseProvider(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			}
			if test.wantErr {
				if !errors.Is(err, ErrUnsupportedProvider) {
					t.Errorf("error = %v, want ErrUnsupportedProvider", err)
				}
				return
			}
			if got != test.want {
				t.Errorf("ParseProvider(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

// Requirement: Normalize collapses each provider's claim layout onto one
// shape with the provider-prefixed reconciliation key.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		raw      map[string]any
		want     NormalizedIdentity
		wantErr  error
	}{
		{
			name:     "kakao with numeric id",
			provider: ProviderKakao,
			raw: map[string]any{
				"id": json.Number("123456789"),
				"properties": map[string]any{
					"nickname": "kim",
				},
			},
			want: NormalizedIdentity{OAuthID: "kakao_123456789", Nickname: "kim", Email: ""},
		},
		{
			name:     "kakao id decoded as float64",
			provider: ProviderKakao,
			raw: map[string]any{
				"id": float64(123456789),
				"properties": map[string]any{
					"nickname": "kim",
				},
			},
			want: NormalizedIdentity{OAuthID: "kakao_123456789", Nickname: "kim", Email: ""},
		},
		{
			name:     "kakao ignores top-level email claim",
			provider: ProviderKakao,
			raw: map[string]any{
				"id":         "42",
				"email":      "leak@example.com",
				"properties": map[string]any{"nickname": "kim"},
			},
			want: NormalizedIdentity{OAuthID: "kakao_42", Nickname: "kim", Email: ""},
		},
		{
			name:     "google flat claims",
			provider: ProviderGoogle,
			raw: map[string]any{
				"sub":   "g-110169484",
				"name":  "Jane Doe",
				"email": "jane@example.com",
			},
			want: NormalizedIdentity{OAuthID: "google_g-110169484", Nickname: "Jane Doe", Email: "jane@example.com"},
		},
		{
			name:     "naver nested response",
			provider: ProviderNaver,
			raw: map[string]any{
				"resultcode": "00",
				"response": map[string]any{
					"id":       "n-32742776",
					"nickname": "openapi",
					"email":    "openapi@naver.com",
				},
			},
			want: NormalizedIdentity{OAuthID: "naver_n-32742776", Nickname: "openapi", Email: "openapi@naver.com"},
		},
		{
			name:     "kakao missing id",
			provider: ProviderKakao,
			raw:      map[string]any{"properties": map[string]any{"nickname": "kim"}},
			wantErr:  ErrMissingClaim,
		},
		{
			name:     "kakao missing nickname",
			provider: ProviderKakao,
			raw:      map[string]any{"id": "42", "properties": map[string]any{}},
			wantErr:  ErrMissingClaim,
		},
		{
			name:     "kakao missing properties entirely",
			provider: ProviderKakao,
			raw:      map[string]any{"id": "42"},
			wantErr:  ErrMissingClaim,
		},
		{
			name:     "google nickname at kakao location not found",
			provider: ProviderGoogle,
			raw: map[string]any{
				"sub":        "g-1",
				"properties": map[string]any{"nickname": "kim"},
			},
			wantErr: ErrMissingClaim,
		},
		{
			name:     "naver missing response envelope",
			provider: ProviderNaver,
			raw:      map[string]any{"id": "n-1", "nickname": "openapi"},
			wantErr:  ErrMissingClaim,
		},
		{
			name:     "unknown provider",
			provider: Provider("GITHUB"),
			raw:      map[string]any{"id": "1"},
			wantErr:  ErrUnsupportedProvider,
		},
		{
			name:     "nil claims",
			provider: ProviderGoogle,
			raw:      nil,
			wantErr:  ErrMissingClaim,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Normalize(test.provider, test.raw)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Normalize() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got != test.want {
				t.Errorf("Normalize() = %+v, want %+v", got, test.want)
			}
		})
	}
}

// Requirement: Normalize is pure; the input claim map is never mutated.
func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := map[string]any{
		"sub":   "g-1",
		"name":  "Jane",
		"email": "jane@example.com",
		"extra": "untouched",
	}

	if _, err := Normalize(ProviderGoogle, raw); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if len(raw) != 4 {
		t.Errorf("claim map length changed to %d", len(raw))
	}
	if raw["extra"] != "untouched" {
		t.Errorf("claim map was mutated: %+v", raw)
	}
}

// Requirement: the same claims always normalize to the same identity.
func TestNormalizeDeterministic(t *testing.T) {
	raw := map[string]any{
		"id":         json.Number("777"),
		"properties": map[string]any{"nickname": "kim"},
	}

	first, err := Normalize(ProviderKakao, raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	second, err := Normalize(ProviderKakao, raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if first != second {
		t.Errorf("identities differ: %+v vs %+v", first, second)
	}
}
