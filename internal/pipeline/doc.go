// Package pipeline sequences the processing stages and mediates their
// artifact handoffs.
//
// Stages communicate only through JSON artifacts in the work
// directory, so each stage can also run standalone from the CLI. Fetch
// and classify failures abort a run; every downstream stage degrades
// instead, leaving its failure in the final report. A stage whose
// input artifact is missing fails its precondition rather than
// fetching on its own.
package pipeline
