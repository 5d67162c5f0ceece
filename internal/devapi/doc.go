// Package devapi is an in-memory stand-in for the ConstructHub backend.
//
// It serves the same REST contract the client talks to: registration,
// login and token refresh under /profiles/, posts and comments under
// /postagens/, and material estimates under /predict/. Tokens are HS256
// JWTs with a configurable lifetime, which makes it possible to exercise
// silent refresh end to end. Data lives in memory and is lost on exit.
package devapi
