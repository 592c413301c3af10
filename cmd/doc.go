// Package cmd implements the command-line interface for inboxpilot.
//
// This package provides the following commands:
//   - auth: Authorize Gmail access via OAuth
//   - run: Run the full triage pipeline (fetch through labels)
//   - fetch: Fetch recent emails into the email cache
//   - classify: Classify cached emails into categories
//   - invoices: Archive invoice attachments and extract their metadata
//   - contexts: Update per-client context records
//   - drafts: Generate reply drafts for client emails
//   - labels: Mirror categories as Gmail labels
//   - version: Display version information
//
// The run command is the default command when no subcommand is specified.
package cmd
