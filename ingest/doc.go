// Package ingest runs the batch pipeline from a content directory to a
// chunk store: load markdown and HTML sources, chunk and enrich each
// document in a bounded worker pool, cross-reference the whole batch,
// and hand the result to the store.
package ingest
