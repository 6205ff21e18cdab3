// Package auth builds the signed headers that authenticate each request to the Trimlight cloud API.
//
// Every request carries three headers derived from the client id, the shared secret
// and the current time in milliseconds:
//
//	authorization: base64(HMAC-SHA256(secret, "Trimlight|<client id>|<timestamp>"))
//	S-ClientId:    <client id>
//	S-Timestamp:   <timestamp>
//
// The timestamp is part of the signed message, so a header set must be produced
// fresh for every request and never reused.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"
)

// Header names expected by the API.
const (
	HeaderAuthorization = "authorization"
	HeaderClientID      = "S-ClientId"
	HeaderTimestamp     = "S-Timestamp"
)

const messagePrefix = "Trimlight|"

// Credentials identify an API client.
type Credentials struct {
	ClientID string
	Secret   []byte
}

// SignedHeaders is the header set for a single request.
type SignedHeaders struct {
	AccessToken string
	ClientID    string
	Timestamp   string
}

// Sign computes the signed header set for clientID at now.
// Any secret length is accepted, including zero.
func Sign(clientID string, secret []byte, now time.Time) SignedHeaders {
	timestamp := strconv.FormatInt(now.UnixMilli(), 10)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(messagePrefix + clientID + "|" + timestamp))

	return SignedHeaders{
		AccessToken: base64.StdEncoding.EncodeToString(mac.Sum(nil)),
		ClientID:    clientID,
		Timestamp:   timestamp,
	}
}

// Apply sets the three authentication headers on h.
func (s SignedHeaders) Apply(h http.Header) {
	// Names are sent verbatim, not canonicalized.
	h[HeaderAuthorization] = []string{s.AccessToken}
	h[HeaderClientID] = []string{s.ClientID}
	h[HeaderTimestamp] = []string{s.Timestamp}
}

// Signer signs with fixed credentials and a clock.
type Signer struct {
	creds Credentials
	now   func() time.Time
}

// NewSigner creates a signer. A nil clock means time.Now.
func NewSigner(creds Credentials, clock func() time.Time) *Signer {
	if clock == nil {
		clock = time.Now
	}
	secret := make([]byte, len(creds.Secret))
	copy(secret, creds.Secret)
	return &Signer{
		creds: Credentials{ClientID: creds.ClientID, Secret: secret},
		now:   clock,
	}
}

// ClientID returns the signer's client id.
func (s *Signer) ClientID() string {
	return s.creds.ClientID
}

// Sign returns a new header set stamped with the current clock reading.
func (s *Signer) Sign() SignedHeaders {
	return Sign(s.creds.ClientID, s.creds.Secret, s.now())
}
