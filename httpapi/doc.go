// Package httpapi exposes the asset availability operations over HTTP.
//
// Routing uses the net/http method patterns introduced in Go 1.22. Business
// rejections are returned as 422 responses carrying the stable reason code,
// so clients can distinguish them from transport-level failures: unknown
// assets map to 404, duplicate registrations and lost-update races to 409.
package httpapi
