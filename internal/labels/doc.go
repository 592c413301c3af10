// Package labels projects classification results onto Gmail labels.
//
// The applier is idempotent at the mailbox level: an email that already
// carries any label under the assistant namespace is skipped, so
// re-running a pipeline never stacks or flips labels. Labels are
// created on demand and resolved once per run.
package labels
