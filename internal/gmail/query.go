package gmail

import (
	"fmt"
	"strings"
	"time"
)

// ReadFilter restricts a query by read state.
type ReadFilter string

const (
	ReadAny    ReadFilter = ""
	ReadOnly   ReadFilter = "read"
	UnreadOnly ReadFilter = "unread"
)

// Query describes a message search window.
type Query struct {
	// After and Before bound the date window. Zero values leave the
	// bound open.
	After  time.Time
	Before time.Time
	Read   ReadFilter
	// Extra is appended verbatim for ad-hoc refinement.
	Extra string
}

// String renders the Gmail search query.
func (q Query) String() string {
	var parts []string
	if !q.After.IsZero() {
		parts = append(parts, fmt.Sprintf("after:%s", q.After.Format("2006/01/02")))
	}
	if !q.Before.IsZero() {
		parts = append(parts, fmt.Sprintf("before:%s", q.Before.Format("2006/01/02")))
	}
	switch q.Read {
	case ReadOnly:
		parts = append(parts, "is:read")
	case UnreadOnly:
		parts = append(parts, "is:unread")
	}
	if q.Extra != "" {
		parts = append(parts, q.Extra)
	}
	return strings.Join(parts, " ")
}

// LastDays builds a query for the trailing n-day window ending now.
func LastDays(n int, read ReadFilter, now time.Time) Query {
	return Query{
		After: now.AddDate(0, 0, -n),
		Read:  read,
	}
}
