// Package model defines the core data types shared across the chunking,
// enrichment, quality, and reranking packages: source documents, derived
// chunks with their metadata, extracted entities and relationships, and
// the ephemeral scored-chunk pairing used at query time.
//
// The types here are plain data with no behavior beyond formatting and
// lookup helpers, and no dependencies outside the standard library.
package model
