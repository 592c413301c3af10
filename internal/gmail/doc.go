// Package gmail wraps the Gmail API for the pipeline: fetching
// messages in a date window, converting them to the internal email
// record, downloading attachments, and managing labels.
//
// All mutation goes through single-message label modifications; the
// pipeline never sends, archives or deletes mail.
package gmail
