package crypto

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerateToken_CreatePair(t *testing.T) {
	pair, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if pair.Token == "" {
		t.Fatal("Token is empty")
	}
	if pair.Hash == "" {
		t.Fatal("Hash is empty")
	}
	if pair.Token == pair.Hash {
		t.Error("Token and Hash should differ")
	}

	// 32 random bytes base64url-encode to 43 characters
	if len(pair.Token) != 43 {
		t.Errorf("Token length = %d, want 43", len(pair.Token))
	}

	// sha256 hex digest is 64 characters
	if len(pair.Hash) != 64 {
		t.Errorf("Hash length = %d, want 64", len(pair.Hash))
	}

	if HashToken(pair.Token) != pair.Hash {
		t.Error("Hash does not match HashToken(Token)")
	}
}

func TestGenerateToken_URLSafe(t *testing.T) {
	for i := 0; i < 50; i++ {
		pair, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		if strings.ContainsAny(pair.Token, "+/=") {
			t.Fatalf("Token contains non-url-safe characters: %s", pair.Token)
		}
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		pair, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken() error = %v", err)
		}
		if seen[pair.Token] {
			t.Fatalf("duplicate token generated: %s", pair.Token)
		}
		seen[pair.Token] = true
	}
}

func TestGenerateToken_Concurrent(t *testing.T) {
	const goroutines = 50

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pair, err := GenerateToken()
			if err != nil {
				t.Errorf("GenerateToken() error = %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[pair.Token] {
				t.Errorf("duplicate token generated: %s", pair.Token)
			}
			seen[pair.Token] = true
		}()
	}

	wg.Wait()
}

func TestHashToken_Deterministic(t *testing.T) {
	token := "some-opaque-token"

	first := HashToken(token)
	second := HashToken(token)

	if first != second {
		t.Errorf("HashToken not deterministic: %s vs %s", first, second)
	}

	if HashToken("another-token") == first {
		t.Error("different tokens should not collide")
	}
}

func TestVerifyTokenHash(t *testing.T) {
	pair, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name       string
		token      string
		storedHash string
		want       bool
	}{
		{name: "matching pair", token: pair.Token, storedHash: pair.Hash, want: true},
		{name: "wrong token", token: "wrong", storedHash: pair.Hash, want: false},
		{name: "wrong hash", token: pair.Token, storedHash: "deadbeef", want: false},
		{name: "empty token", token: "", storedHash: pair.Hash, want: false},
		{name: "empty hash", token: pair.Token, storedHash: "", want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := VerifyTokenHash(test.token, test.storedHash); got != test.want {
				t.Errorf("VerifyTokenHash() = %v, want %v", got, test.want)
			}
		})
	}
}
