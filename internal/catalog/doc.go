// Package catalog provides the HTTP client for remote catalog search APIs.
//
// # Overview
//
// A catalog is any HTTP endpoint that answers a keyword query with a JSON
// list of records. Two shapes are built in:
//
//   - Stories: the Hacker News search API, {"hits": [{title, url, author,
//     num_comments, points, objectID}, ...]}
//   - Books: a bare array, [{Id, Name, Author, Price}, ...]
//
// Records are passed through verbatim. The Schema only decides where the
// array lives, which field identifies a record, and which fields the UI
// shows as columns.
//
// # Query URLs
//
// A query URL is the configured endpoint with the escaped search term
// appended:
//
//	catalog.QueryURL("https://hn.algolia.com/api/v1/search?query=", "go lang")
//	// https://hn.algolia.com/api/v1/search?query=go+lang
//
// # Error Handling
//
// Fetch wraps every failure in one of two sentinels so callers can match
// with errors.Is:
//
//   - ErrTransport: request creation, network errors, non-2xx statuses
//   - ErrDecode: empty, malformed or wrongly shaped bodies
//
// Example error messages:
//   - "transport: execute request: dial tcp: connection refused"
//   - "transport: api /api/v1/search returned status 500"
//   - "decode: decode response: unexpected EOF"
//
// # Design Rationale
//
// The client does no caching, retries or cancellation of its own. A fetch
// is bounded only by the http.Client timeout; the caller's context can
// still cancel it.
package catalog
