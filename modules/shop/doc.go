// Package shop is the storefront's HTTP module.
//
// Every visitor (identified by pkg/visitor) owns one Client: a cart.Store
// and a guard.Guard over a storage view namespaced by the visitor ID. The
// Clients registry keeps recently active visitors in an LRU cache and
// rebuilds evicted ones from storage.
//
// Router mounts the JSON API under /api and one gated handler per page
// route. Pages answer with a small JSON descriptor or a 303 redirect
// decided by the route gate.
//
//	r := chi.NewRouter()
//	r.Mount("/", shop.Router(shop.Options{
//	    Clients:  clients,
//	    Backend:  api,
//	    Visitors: visitors,
//	    Routes:   guard.DefaultRoutes(),
//	}))
package shop
