// Package quality scores chunks on coherence, information density,
// entity preservation, and context completeness. Scores are diagnostic:
// they drive strategy comparison and reporting, never ingestion gating.
package quality
