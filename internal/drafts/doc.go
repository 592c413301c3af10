// Package drafts generates suggested reply drafts for client emails.
//
// Drafts are plain text, written as artifacts for human review; the
// pipeline never sends mail. Replies to known clients are grounded in
// the accumulated client context so the tone and content stay
// consistent with the engagement.
package drafts
