package clientctx

import "strings"

// Store persists client records keyed by sender address.
type Store interface {
	// Get loads the record for the address. The second return is false
	// when no record exists yet; that is not an error.
	Get(address string) (*ClientContext, bool, error)
	// Put writes the full record, replacing any previous version.
	Put(address string, record *ClientContext) error
}

// storeKey canonicalizes an address for use as a store key.
func storeKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
