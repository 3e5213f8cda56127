// Package backend is a small client for the storefront REST API.
//
// It covers only the calls the storefront needs: exchanging credentials for
// a token and role, reading catalog dashboards and submitting a purchase.
// Credential validation, pricing and inventory stay on the server.
package backend
