// Package invoices turns invoice-classified emails into an organized
// archive with structured metadata.
//
// PDF attachments are downloaded, their text extracted and scored, and
// the files filed by month and by issuer. Invoices that live behind a
// vendor dashboard (no attachment, just a notification) are detected
// heuristically and queued for manual download. Every failure is
// recorded per item; one broken PDF never stops the batch.
package invoices
