// Package clientctx maintains a durable per-sender dossier that
// accumulates across pipeline runs.
//
// Each sender address owns one record holding contact envelope data, a
// project summary, an append-only communication log, and a list of
// action items. A synthesizer asks an inference provider to distill
// each new email into a structured delta; when the provider fails, the
// delta degrades to envelope facts so the record still advances.
package clientctx
