// Package guard tracks a visitor's authentication state and decides, per
// navigation, whether a page may be rendered or the visitor must be
// redirected.
//
// A Guard owns one Session. Login and Logout mutate it and mirror the
// change to durable storage; Restore hydrates it from storage once at
// startup. The guard performs no network I/O of its own and never validates
// credentials: Login is called only after the backend accepted them.
//
// # Restoration
//
// Restore returns a channel that is closed when hydration has resolved.
// Route decisions made before that point would wrongly send an already
// logged-in visitor to the login page, so Check and Middleware wait on the
// channel before evaluating anything:
//
//	g := guard.New(storage.Namespace(base, "visitor:"+id))
//	<-g.Restore(ctx)
//
//	decision, err := g.Check(ctx, guard.Requirement{RequireAuth: true})
//
// # Route gate
//
// Evaluate is a pure function of a Session and a Requirement:
//
//   - guest-only route, authenticated visitor → redirect to "/"
//   - authentication required, anonymous visitor → redirect to "/login"
//   - role list set, role not in list → redirect to "/"
//   - otherwise the page is allowed
//
// A role list implies authentication, so an anonymous visitor asking for a
// role-restricted page is sent to "/login", never to "/". A missing role
// never satisfies a role list.
package guard
