package common

// AuthHeaderName is the HTTP header used to carry the session token on
// protected requests.
const AuthHeaderName = "Authorization"

// AuthScheme is the expected prefix of the auth header value.
const AuthScheme = "Bearer"
