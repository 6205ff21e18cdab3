package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1710000000123)

func TestSign_MessageFormat(t *testing.T) {
	secret := []byte("test_secret")
	got := Sign("test_id", secret, fixedNow)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("Trimlight|test_id|1710000000123"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, got.AccessToken)
	assert.Equal(t, "test_id", got.ClientID)
	assert.Equal(t, "1710000000123", got.Timestamp)
}

func TestSign_Deterministic(t *testing.T) {
	a := Sign("client", []byte("secret"), fixedNow)
	b := Sign("client", []byte("secret"), fixedNow)
	assert.Equal(t, a, b)
}

func TestSign_TimestampSensitive(t *testing.T) {
	a := Sign("client", []byte("secret"), fixedNow)
	b := Sign("client", []byte("secret"), fixedNow.Add(time.Millisecond))
	assert.NotEqual(t, a.AccessToken, b.AccessToken)
	assert.NotEqual(t, a.Timestamp, b.Timestamp)
}

func TestSign_ClientIDSensitive(t *testing.T) {
	a := Sign("client-a", []byte("secret"), fixedNow)
	b := Sign("client-b", []byte("secret"), fixedNow)
	assert.NotEqual(t, a.AccessToken, b.AccessToken)
}

func TestSign_SecretSensitive(t *testing.T) {
	a := Sign("client", []byte("secret-1"), fixedNow)
	b := Sign("client", []byte("secret-2"), fixedNow)
	assert.NotEqual(t, a.AccessToken, b.AccessToken)
}

func TestSign_TokenIsPaddedBase64OfSHA256(t *testing.T) {
	got := Sign("client", []byte("secret"), fixedNow)

	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`), got.AccessToken)
	raw, err := base64.StdEncoding.DecodeString(got.AccessToken)
	require.NoError(t, err)
	assert.Len(t, raw, sha256.Size)
}

func TestSign_EmptySecret(t *testing.T) {
	got := Sign("client", nil, fixedNow)
	raw, err := base64.StdEncoding.DecodeString(got.AccessToken)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestSign_SecretNotInOutput(t *testing.T) {
	secret := "very-secret-value"
	got := Sign("client", []byte(secret), fixedNow)
	assert.NotContains(t, got.AccessToken, secret)
	assert.NotContains(t, got.Timestamp, secret)
}

func TestSignedHeaders_Apply(t *testing.T) {
	h := http.Header{}
	Sign("client", []byte("secret"), fixedNow).Apply(h)

	assert.Len(t, h["authorization"], 1)
	assert.Equal(t, []string{"client"}, h["S-ClientId"])
	assert.Equal(t, []string{"1710000000123"}, h["S-Timestamp"])
}

func TestSigner_FreshPerCall(t *testing.T) {
	var mu sync.Mutex
	now := fixedNow
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Millisecond)
		return now
	}

	s := NewSigner(Credentials{ClientID: "client", Secret: []byte("secret")}, clock)
	first := s.Sign()
	second := s.Sign()

	assert.Equal(t, "client", s.ClientID())
	assert.NotEqual(t, first.Timestamp, second.Timestamp)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
}

func TestSigner_CopiesSecret(t *testing.T) {
	secret := []byte("secret")
	s := NewSigner(Credentials{ClientID: "client", Secret: secret}, func() time.Time { return fixedNow })
	before := s.Sign()

	secret[0] = 'X'
	assert.Equal(t, before, s.Sign())
}

func TestSigner_DefaultClock(t *testing.T) {
	s := NewSigner(Credentials{ClientID: "client"}, nil)
	got := s.Sign()
	assert.Regexp(t, `^\d+$`, got.Timestamp)
}
