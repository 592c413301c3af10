// Package artifact reads and writes the JSON artifacts stages exchange
// through the work directory: the fetch cache, classification results,
// invoice metadata and the per-stage reports.
//
// Artifacts are the only coupling between standalone stage commands, so
// a missing artifact is a precondition failure for the consuming stage
// rather than a silent empty input.
package artifact
