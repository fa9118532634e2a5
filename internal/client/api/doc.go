// Package api is the EasyFlow backend gateway: the single component that
// issues HTTP calls to the REST API.
//
// # Overview
//
// The package provides:
//  1. A Client that attaches credentials (Bearer access token), the static
//     API key, and a request id to every call, parses JSON responses, and
//     normalizes every non-2xx response into *Error.
//  2. Typed endpoint wrappers for auth, invoices, expenses, receipts,
//     summary, and billing. None of them contain business logic beyond
//     endpoint/method/payload shaping.
//  3. A single-slot unauthorized handler. Any 401/403 response invokes the
//     registered handler before the error is returned, unless the call
//     suppressed escalation (refresh and logout do, to avoid forced-logout
//     loops).
//
// # Error Handling
//
// Non-2xx responses become *Error carrying the numeric status and the
// message from the body's "error" field, falling back to "HTTP <status>".
// Transport failures are returned wrapped, with no status attached; callers
// must treat the absence of a status as a non-auth failure. The client never
// retries.
//
// # Token storage
//
// The access token lives in memory with a durable backing copy behind the
// TokenStore interface. SetAccessToken mirrors every change synchronously;
// AccessToken lazily hydrates from the store on first use.
package api
