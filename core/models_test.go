package core

import (
	"encoding/json"
	"testing"
	"time"
)

// Requirement: OAuthID is the internal reconciliation key and must never
// appear in JSON responses.
func TestAccountJSONHidesOAuthID(t *testing.T) {
	account := &Account{
		ID:        "account1",
		Email:     "kim@example.com",
		Nickname:  "kim",
		OAuthID:   "kakao_123456789",
		Role:      RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	raw, err := json.Marshal(account)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if _, exists := m["oauthId"]; exists {
		t.Error("OAuthID exposed in JSON")
	}
	for _, field := range []string{"id", "nickname", "role"} {
		if _, exists := m[field]; !exists {
			t.Errorf("required field %s missing", field)
		}
	}
}

// Requirement: the stored token hash must never appear in JSON responses.
func TestRefreshTokenJSONHidesHash(t *testing.T) {
	token := &RefreshToken{
		ID:        "token1",
		AccountID: "account1",
		TokenHash: "deadbeef",
		FamilyID:  "family1",
		State:     TokenActive,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	raw, err := json.Marshal(token)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if _, exists := m["tokenHash"]; exists {
		t.Error("TokenHash exposed in JSON")
	}
}

func TestAccountProvider(t *testing.T) {
	tests := []struct {
		name    string
		oauthID string
		want    string
	}{
		{name: "kakao key", oauthID: "kakao_123456789", want: "kakao"},
		{name: "google key", oauthID: "google_g-110169484", want: "google"},
		{name: "id containing underscores", oauthID: "naver_a_b_c", want: "naver"},
		{name: "empty key", oauthID: "", want: "unknown"},
		{name: "no separator", oauthID: "kakao123", want: "unknown"},
		{name: "leading separator", oauthID: "_123", want: "unknown"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			account := &Account{OAuthID: test.oauthID}
			if got := account.Provider(); got != test.want {
				t.Errorf("Provider() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestRefreshTokenUsable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		state TokenState
		expAt time.Time
		want  bool
	}{
		{name: "active unexpired", state: TokenActive, expAt: now.Add(time.Hour), want: true},
		{name: "active expired", state: TokenActive, expAt: now.Add(-time.Hour), want: false},
		{name: "rotated", state: TokenRotated, expAt: now.Add(time.Hour), want: false},
		{name: "revoked", state: TokenRevoked, expAt: now.Add(time.Hour), want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token := &RefreshToken{State: test.state, ExpiresAt: test.expAt}
			if got := token.Usable(now); got != test.want {
				t.Errorf("Usable() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestPrincipalAnonymous(t *testing.T) {
	var anonymous Principal
	if !anonymous.Anonymous() {
		t.Error("zero Principal should be anonymous")
	}

	authenticated := Principal{Account: &Account{ID: "account1"}}
	if authenticated.Anonymous() {
		t.Error("Principal with account should not be anonymous")
	}
}
