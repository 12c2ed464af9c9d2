// Package auth is the client's session boundary.
//
// Sign-in happens outside this module with the hosted identity provider.
// The resulting ID token is handed to TokenSession, which reads the user id
// and the storage partition from its claims, sends it as the API bearer
// token and caches it in the local metadata table so a later run can
// restore the session. Tokens are never issued or refreshed here.
//
// The signature is not verified locally; the data API does that on every
// request. Only expiry is checked so stale sessions are dropped early.
package auth
