// Package classify assigns one taxonomy category to each email using a
// primary inference provider with a fallback provider and a terminal
// default.
//
// The chain runs at most once per provider: primary, then fallback on
// a transport failure or an unrecognized category token, then the
// taxonomy's fallback category. Falling through to the default is
// reported through the result, never swallowed.
package classify
