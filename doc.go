// Package session implements the client-side authentication session
// lifecycle for applications that talk to a remote Auth API: silent
// re-authentication at startup, login/registration/logout flows, and a
// subscribe/read surface for route guards and profile widgets.
//
// Session lifecycle:
//   - A single Manager owns the session state machine
//     (uninitialized -> loading -> authenticated/unauthenticated). State
//     transitions are expressed as Action values reduced by the pure Apply
//     function, so the transition table can be tested without any network
//     or storage in play.
//   - Credentials are persisted through the Store interface (token and user
//     snapshot as whole values). Memory and file-backed stores live in this
//     package; Redis and SQLite-backed stores live under store/.
//   - Every asynchronous attempt carries a generation stamp. A resolution
//     that arrives after a newer attempt or an intervening Logout is
//     discarded, so a stale network response can never clobber the current
//     session.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter fed by the Manager on
//     every lifecycle event (restore, login, registration, logout, user
//     update, token refresh). Sinks run best-effort (errors are logged) so
//     you can forward to a log pipeline or queue without blocking auth.
package session
