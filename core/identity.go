package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Provider is a supported OAuth2 identity provider.
type Provider string

const (
	ProviderKakao  Provider = "KAKAO"
	ProviderGoogle Provider = "GOOGLE"
	ProviderNaver  Provider = "NAVER"
)

// ParseProvider maps a registration id (any case) onto a known provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToUpper(strings.TrimSpace(s))) {
	case ProviderKakao:
		return ProviderKakao, nil
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderNaver:
		return ProviderNaver, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
	}
}

// NormalizedIdentity is the single shape every provider's claims collapse to.
type NormalizedIdentity struct {
	OAuthID  string // "<provider>_<providerUserId>", the reconciliation key
	Email    string // may be empty when the scope grants none
	Nickname string
}

// Normalize maps a provider-specific claim set onto a NormalizedIdentity.
//
// Pure and side-effect free: each provider nests its fields differently, and
// this is the only place that knows those layouts.
//
//   - KAKAO:  id at the top level, nickname under "properties", no email scope
//   - GOOGLE: flat "sub", "name" and "email" claims
//   - NAVER:  id, nickname and email nested under "response"
func Normalize(provider Provider, raw map[string]any) (NormalizedIdentity, error) {
	var id, nickname, email string

	switch provider {
	case ProviderKakao:
		id = claimString(raw, "id")
		props, _ := raw["properties"].(map[string]any)
		nickname = claimString(props, "nickname")
	case ProviderGoogle:
		id = claimString(raw, "sub")
		nickname = claimString(raw, "name")
		email = claimString(raw, "email")
	case ProviderNaver:
		resp, _ := raw["response"].(map[string]any)
		id = claimString(resp, "id")
		nickname = claimString(resp, "nickname")
		email = claimString(resp, "email")
	default:
		return NormalizedIdentity{}, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}

	if id == "" {
		return NormalizedIdentity{}, fmt.Errorf("%w: %s id", ErrMissingClaim, strings.ToLower(string(provider)))
	}
	if nickname == "" {
		return NormalizedIdentity{}, fmt.Errorf("%w: %s nickname", ErrMissingClaim, strings.ToLower(string(provider)))
	}

	return NormalizedIdentity{
		OAuthID:  strings.ToLower(string(provider)) + "_" + id,
		Email:    email,
		Nickname: nickname,
	}, nil
}

// claimString reads a claim value as a string. Providers send numeric user
// ids as JSON numbers, so those stringify without an exponent.
func claimString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
