// Package client contains the MotoSegura backend client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface and its
//     parts StatusAPI, AuthAPI, FichaAPI, MotoAPI and DashboardAPI).
//  2. A concrete REST implementation (see RESTClient) built on resty. Its
//     middleware attaches the bearer token read from a CredentialSource on
//     every request, tags requests with an X-Request-ID and logs every
//     response.
//  3. Envelope decoders that unwrap {status, <key>: ...} bodies and reject
//     unexpected shapes as malformed.
//  4. A single mobile fallback for list and search calls: when the primary
//     call fails on a mobile user agent, one raw net/http request marked
//     with X-Mobile-Device is attempted. If it fails too, the original error
//     is returned.
//  5. Concurrent bulk delete with per-id outcomes (BulkResult).
//
// # Error Handling
//
// Every failure is an *APIError whose Kind classifies it. Callers match kinds
// with errors.Is against ErrRateLimited, ErrUnauthorized, ErrNotFound,
// ErrUnavailable, ErrServerError, ErrMalformedResponse and ErrInvalidRequest.
// Rate-limit errors carry RetryAfter seconds (see RetryAfterSeconds).
//
// Delete calls need a credential sent as X-API-Key. An empty credential
// fails with ErrUnauthorized before any request is made.
//
// Concurrency & Contexts
//
// RESTClient is safe for concurrent use. All network operations accept
// context.Context and honor cancellation and deadlines.
package client
