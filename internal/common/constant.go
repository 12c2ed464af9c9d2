package common

// AuthorizationHeaderName is the HTTP header that carries the session token
// on data gateway requests.
const AuthorizationHeaderName = "Authorization"
