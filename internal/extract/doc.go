// Package extract pulls structured invoice fields out of document text
// using an inference provider and scores each extraction by field
// coverage.
//
// An extraction never guesses: fields the text does not support come
// back null and lower the confidence score. Low-confidence results are
// routed to a manual review queue instead of being silently accepted.
package extract
