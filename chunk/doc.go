// Package chunk turns documents into size-bounded, semantically coherent
// chunks. It provides a content feature extractor (structural markers,
// entity hits, an information-density score), a boundary detector that
// concentrates split points at headings and in information-dense regions,
// a chunk assembler that merges boundary slices under a maximum size with
// a fixed-size sliding-window fallback, and per-category chunking
// strategies selected through an explicit registry with a generic default.
//
// Every strategy degrades gracefully: when a structural assumption does
// not hold (no headings, no vendor preamble, unparseable table), the
// chunker falls through an explicit ordered list of simpler strategies
// rather than failing the document.
package chunk
