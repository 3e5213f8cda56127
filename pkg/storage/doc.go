// Package storage provides the durable key/value persistence the storefront
// uses in place of browser local storage.
//
// Every visitor owns two independent records, the cart snapshot and the
// session record. Both are opaque byte slices to this package; callers
// decide the encoding. Keys are stable across restarts, so a record written
// before a restart is read back unchanged after it.
//
// Three back-ends ship with the package:
//
//   - Memory keeps records in a map. Useful for tests and single-process demos.
//   - File keeps one file per key under a directory.
//   - Redis keeps records in Redis with an optional TTL.
//
// Namespace wraps any Storage and prefixes keys, which is how per-visitor
// isolation is achieved:
//
//	base, closeFn, err := storage.Open(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer closeFn()
//
//	visitorStore := storage.Namespace(base, "visitor:"+id)
//	_ = visitorStore.Set(ctx, "cart", snapshot)
//
// # Error Handling
//
//   - ErrNotFound   – no record stored under the key
//   - ErrEmptyKey   – key is empty or otherwise unusable
//   - ErrUnknownDriver – Open received an unsupported driver name
package storage
