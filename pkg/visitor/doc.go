// Package visitor identifies browsers across requests with a signed cookie.
//
// Each browser gets a random UUID the first time it shows up. The ID is
// stored in a cookie together with an HMAC-SHA256 signature, so a visitor
// can neither forge nor guess another visitor's ID. The first secret signs
// new cookies; every secret is accepted when verifying, which allows key
// rotation without logging anyone out.
//
//	ids, err := visitor.New(visitor.Config{Secrets: []string{secret}})
//	r.Use(ids.Middleware)
//
//	id, _ := visitor.FromContext(r.Context())
package visitor
