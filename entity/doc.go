// Package entity extracts typed domain entities and relationships from
// chunk text using declarative pattern tables: vendor and product name
// lists, parser/use-case/field trigger phrases, MITRE ATT&CK technique
// IDs and tactic names, and event-type vocabulary.
//
// The pattern tables are compiled exactly once per process on first use
// and are read-only afterwards, so the analyzer is safe for concurrent
// use across documents. Extraction is pure pattern matching: it needs no
// schema and no trained model, and it is deterministic for a given input.
package entity
