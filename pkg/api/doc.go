// Package api is the HTTP client for the storefront backend. It covers the
// endpoints the client consumes: credential exchange (login / register), the
// product catalog, order placement and listing, and the thin admin calls for
// user management.
//
// The client attaches the current bearer credential from a TokenSource on
// every request; the session manager satisfies that interface. It never
// validates credentials itself (the server does) and surfaces non-2xx
// responses as *APIError values decoded from the backend's {"message": ...}
// error bodies.
package api
