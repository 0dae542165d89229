// Package rerank reorders already-retrieved candidate chunks for a
// query. Scoring goes through a cross-encoder model when one is
// configured and reachable within a bounded timeout, and falls back to a
// lexical heuristic otherwise. Results are diversified across document
// categories and threshold-filtered with a minimum-result floor.
package rerank
