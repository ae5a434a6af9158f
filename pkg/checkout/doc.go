// Package checkout turns the active cart into a placed order. The one rule
// that matters here is ordering: the cart is cleared only after the backend
// has accepted the order, never on submission, so a failed placement leaves
// every line intact for a retry.
package checkout
