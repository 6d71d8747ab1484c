// Package cachefetch fetches values from a pluggable key/value cache on
// behalf of a record and routes the record to one of three relationships:
// success, not-found, failure.
//
// Components:
//   - Provider: byte store the values are fetched from (e.g. Redis,
//     Ristretto, BigCache). Only Get is consumed on the dispatch path.
//   - Decoder: optional rendering of stored bytes before they reach the
//     record (raw, JSON, msgpack, CBOR, protobuf).
//   - Fetcher: resolves the configured key template against the record's
//     attributes, drives the lookups, and computes the routing outcome.
//
// Key templates use ${attr} placeholders expanded against the record's
// attributes. With a destination attribute configured, the template may be a
// comma-separated list; each retrieved value then lands in its own attribute
// named <attribute>.<key>, optionally truncated to a byte limit.
//
// Routing:
//
//	every resolved key found        -> success
//	any resolved key missing        -> not-found (found keys still populate attributes)
//	empty resolved key or transport -> failure (no partial results applied)
//
// A dispatch is stateless and performs each lookup exactly once, in
// resolution order, aborting on the first provider error. Retries, timeouts
// and serialization all belong to the Provider implementation.
package cachefetch
