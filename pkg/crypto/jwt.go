package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Access credential errors
var (
	ErrAccessInvalid = errors.New("invalid access credential") // 401, bad signature/shape/type
	ErrAccessExpired = errors.New("access credential expired") // 401
)

// AccessClaims are the verified contents of an access credential.
type AccessClaims struct {
	Email     string `json:"email,omitempty"`
	Nickname  string `json:"nickname"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// AccessCodec signs and verifies short-lived access credentials. Stateless:
// verification is signature plus expiry, no store lookup, no revocation.
type AccessCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewAccessCodec(secret, issuer string, ttl time.Duration) *AccessCodec {
	return &AccessCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Sign mints a signed access credential embedding the account identity.
func (c *AccessCodec) Sign(accountID, email, nickname string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Email:     email,
		Nickname:  nickname,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    c.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature, issuer and expiry and returns the claims.
// Failures collapse to ErrAccessExpired or ErrAccessInvalid only.
func (c *AccessCodec) Verify(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(c.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrAccessExpired
		}
		return nil, ErrAccessInvalid
	}

	if !token.Valid || claims.TokenType != "access" || claims.Subject == "" {
		return nil, ErrAccessInvalid
	}

	return claims, nil
}
