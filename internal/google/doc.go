// Package google handles OAuth2 authentication against Google APIs and
// caches the resulting token on disk.
package google
