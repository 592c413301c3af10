// Package mail defines the email domain model shared by every pipeline
// stage. The types mirror the on-disk artifact schema, so the same
// structs are used for the fetch cache, classification results and the
// labeling stage.
package mail
