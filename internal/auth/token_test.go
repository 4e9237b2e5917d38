// ABOUTME: Unit tests for JWT token issuance and validation
// ABOUTME: Tests round-trips, tampering, wrong secrets, and expiry boundaries

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// testSecret is a 32-byte secret that meets MinSecretLength requirement.
var testSecret = []byte("test-secret-key-for-jwt-signing!")

func newTestCodec(t *testing.T, opts ...CodecOption) *JWTCodec {
	t.Helper()
	codec, err := NewJWTCodec(testSecret, opts...)
	if err != nil {
		t.Fatalf("NewJWTCodec() error = %v", err)
	}
	return codec
}

func TestNewJWTCodec_RejectsShortSecret(t *testing.T) {
	_, err := NewJWTCodec([]byte("too-short"))
	if !errors.Is(err, ErrSecretTooShort) {
		t.Errorf("NewJWTCodec() error = %v, want ErrSecretTooShort", err)
	}
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	principal, err := codec.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if principal.ID != "user-1" {
		t.Errorf("Validate() ID = %q, want %q", principal.ID, "user-1")
	}
}

func TestJWTCodec_IssueSetsTwentyFourHourExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, WithClock(func() time.Time { return issuedAt }))

	token, err := codec.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var claims jwt.RegisteredClaims
	_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		t.Fatalf("ParseUnverified() error = %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(issuedAt.Add(24 * time.Hour)) {
		t.Errorf("exp = %v, want %v", claims.ExpiresAt.Time, issuedAt.Add(24*time.Hour))
	}
	if claims.Subject != "user-1" {
		t.Errorf("sub = %q, want %q", claims.Subject, "user-1")
	}
}

func TestJWTCodec_IssueIsDeterministic(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, WithClock(func() time.Time { return fixed }))

	a, _ := codec.Issue("user-1")
	b, _ := codec.Issue("user-1")
	if a != b {
		t.Error("Issue() should be deterministic for the same subject, time and secret")
	}
}

func TestJWTCodec_Malformed(t *testing.T) {
	codec := newTestCodec(t)

	otherCodec, err := NewJWTCodec([]byte("a-completely-different-secret-32"))
	if err != nil {
		t.Fatalf("NewJWTCodec() error = %v", err)
	}
	foreign, _ := otherCodec.Issue("user-1")

	valid, _ := codec.Issue("user-1")
	tampered := valid[:len(valid)-2] + "xx"

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "user-1",
	}).SignedString(testSecret)

	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt-token"},
		{name: "three dots", token: "header.payload.signature"},
		{name: "wrong secret", token: foreign},
		{name: "tampered signature", token: tampered},
		{name: "alg none", token: noneToken},
		{name: "missing exp", token: noExp},
		{name: "missing sub", token: noSub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := codec.Validate(tt.token)
			if principal != nil {
				t.Errorf("Validate() principal = %+v, want nil", principal)
			}
			if !errors.Is(err, ErrMalformedToken) {
				t.Errorf("Validate() error = %v, want ErrMalformedToken", err)
			}
		})
	}
}

func TestJWTCodec_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	codec := newTestCodec(t, WithClock(func() time.Time { return now }))

	token, err := codec.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "one second before expiry", at: issuedAt.Add(TokenTTL - time.Second), wantErr: nil},
		{name: "exactly at expiry", at: issuedAt.Add(TokenTTL), wantErr: ErrExpiredToken},
		{name: "after expiry", at: issuedAt.Add(TokenTTL + time.Hour), wantErr: ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = tt.at
			_, err := codec.Validate(token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestJWTCodec_ExpiredConstructedToken(t *testing.T) {
	codec := newTestCodec(t)

	past, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString(testSecret)

	_, err := codec.Validate(past)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() error = %v, want ErrExpiredToken", err)
	}
}

func TestJWTCodec_SecretIsCopied(t *testing.T) {
	secret := append([]byte(nil), testSecret...)
	codec, err := NewJWTCodec(secret)
	if err != nil {
		t.Fatalf("NewJWTCodec() error = %v", err)
	}
	token, _ := codec.Issue("user-1")

	secret[0] ^= 0xff

	if _, err := codec.Validate(token); err != nil {
		t.Errorf("Validate() error = %v after caller mutated secret", err)
	}
}
