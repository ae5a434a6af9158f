// Package session owns the single source of truth for "who, if anyone, is
// authenticated" in the storefront client. A Manager restores a persisted
// bearer credential at startup, self-invalidates on expiry, and handles
// login and logout. Other components read the current identity through
// Current and observe identity transitions through Subscribe; only the
// Manager ever mutates it.
//
// # Lifecycle
//
// A Manager starts uninitialized. Initialize reads the persisted credential
// from the key-value store, decodes it and checks the expiry claim against
// wall-clock time: a valid credential restores the authenticated identity, a
// missing, malformed or expired one leaves the manager anonymous and clears
// the stored credential so it is never retried. Initialize must settle before
// any dependent component (notably the cart manager) makes decisions based on
// the identity.
//
// Persistence is synchronous with Login and Logout: when either returns, a
// process restart observes the new state. A storage fault does not block the
// in-memory transition; it is returned to the caller as a warning while the
// session proceeds in memory only.
//
// # Usage
//
//	store, _ := kv.NewFileStore(path)
//	sessions := session.New(store)
//	if err := sessions.Initialize(ctx); err != nil { ... }
//
//	changes := sessions.Subscribe(ctx)
//	go func() {
//	    for change := range changes {
//	        // react to login / logout / expiry transitions
//	    }
//	}()
//
//	identity, err := sessions.Login(ctx, rawToken)
package session
