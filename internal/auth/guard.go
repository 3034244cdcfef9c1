// filepath: internal/auth/guard.go
// Package auth guards the write side of the track catalog behind a
// shared admin secret.
package auth

import (
	"crypto/subtle"
	"net/http"
)

// HeaderName is the request header carrying the admin secret. Clients
// that cannot set custom headers send the secret in the request body
// instead.
const HeaderName = "X-Admin-Token"

// FieldName is the body field carrying the admin secret, both in JSON
// payloads and in multipart forms.
const FieldName = "token"

// Authorizer decides whether a presented secret grants write access to
// the track catalog.
type Authorizer interface {
	Authorize(secret string) bool
}

// Compile-time check to ensure interface compliance
var _ Authorizer = (*secretAuthorizer)(nil)

type secretAuthorizer struct {
	secret string
}

// NewSecretAuthorizer creates an Authorizer that accepts exactly the
// given secret.
func NewSecretAuthorizer(secret string) Authorizer {
	return &secretAuthorizer{secret: secret}
}

// Authorize compares the presented secret against the configured one
// in constant time. An unconfigured or empty secret never authorizes,
// so a blank config cannot open the catalog to everyone.
func (a *secretAuthorizer) Authorize(secret string) bool {
	if a.secret == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.secret), []byte(secret)) == 1
}

// TokenFromRequest picks the secret a request presents: the header wins,
// the already-decoded body field is the fallback.
func TokenFromRequest(r *http.Request, bodyToken string) string {
	if tok := r.Header.Get(HeaderName); tok != "" {
		return tok
	}
	return bodyToken
}
