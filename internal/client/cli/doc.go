// Package cli provides the interactive ConstructHub command-line client.
//
// It wires configuration, the token store, the authenticated API client and
// the application services, then runs a REPL in place of the web screens.
// Typical flow: restore the previous session, prompt for credentials when
// there is none, and execute user commands.
//
// Key features:
//   - Register / Login / Logout / whoami
//   - Profile view and edit (with profile picture upload)
//   - Post feed with search and paging, own posts, create / edit / delete
//   - Comments per post
//   - Material estimate (cement, sand, bricks) for a floor area
//
// When the API client reports that the session expired, the App drops back
// to the logged-out state and prompts for login before the next command.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
