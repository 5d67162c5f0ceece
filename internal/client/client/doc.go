// Package client is the authenticated HTTP client for the ConstructHub API.
//
// # Overview
//
// HTTPClient issues every backend call for the rest of the application:
//  1. It attaches "Authorization: Bearer <access>" from an explicit per-request
//     authorization snapshot (never from shared default headers).
//  2. On a 401 it exchanges the stored refresh token for a new access token,
//     stores it, and replays the pending request exactly once.
//  3. When renewal is impossible (no refresh token) or fails, it clears the
//     stored credentials and publishes a SessionExpiredEvent. Navigation back
//     to the login prompt is the subscriber's job.
//
// Concurrent 401s share one refresh call (singleflight). A request that saw
// a 401 with a token that another goroutine has already rotated is replayed
// with the current token without a new refresh.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which matches the sentinels
// ErrBadRequest, ErrUnauthorized, ErrForbidden and ErrNotFound via errors.Is.
// Transport failures wrap ErrUnavailable and keep the original error in the
// chain. Renewal failures wrap ErrNoSession or ErrSessionExpired.
//
// Local persistence bootstrap (InitDatabase, RunMigrations) for the sqlite
// token driver also lives here.
package client
