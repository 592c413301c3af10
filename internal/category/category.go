package category

import (
	"sort"
	"strings"
)

// Category is one label from the classification taxonomy.
type Category string

// The default taxonomy. Every fetched email maps to exactly one of
// these after classification.
const (
	Advertising      Category = "advertising"
	Invoice          Category = "invoice"
	ImportantUpdate  Category = "important_update"
	NewClientInquiry Category = "new_client_inquiry"
	ExistingClient   Category = "existing_client"
	Other            Category = "other"
)

// LabelNamespace is the root label under which all labels managed by
// this tool live. An email already carrying any label in this
// namespace is considered processed and is skipped on later runs.
const LabelNamespace = "Email-Assistant"

func (c Category) String() string {
	return string(c)
}

// Entry describes one category of a taxonomy.
type Entry struct {
	// Description is shown to the model when asking for a category.
	Description string
	// LabelPath is the hierarchical Gmail label path for the category.
	LabelPath string
}

// Taxonomy is an immutable category set with prompt descriptions and
// label paths. Construct with New or Default.
type Taxonomy struct {
	entries map[Category]Entry
	// Fallback is the terminal default used when classification fails.
	Fallback Category
}

// New builds a taxonomy from entries. The fallback must be a member of
// the set; callers that pass an unknown fallback get a taxonomy whose
// Valid check rejects it, which surfaces quickly in tests.
func New(entries map[Category]Entry, fallback Category) *Taxonomy {
	copied := make(map[Category]Entry, len(entries))
	for c, e := range entries {
		copied[c] = e
	}
	return &Taxonomy{entries: copied, Fallback: fallback}
}

// Default returns the built-in six-category taxonomy.
func Default() *Taxonomy {
	return New(map[Category]Entry{
		Advertising: {
			Description: "Marketing, promotional content, newsletters, spam",
			LabelPath:   LabelNamespace + "/Advertising",
		},
		Invoice: {
			Description: "Bills, invoices, payment requests, receipts, financial statements",
			LabelPath:   LabelNamespace + "/Invoice",
		},
		ImportantUpdate: {
			Description: "Product updates, service changes, critical notifications, account alerts",
			LabelPath:   LabelNamespace + "/Important-Update",
		},
		NewClientInquiry: {
			Description: "First-time contact, new business opportunities, quote requests",
			LabelPath:   LabelNamespace + "/New-Client",
		},
		ExistingClient: {
			Description: "Ongoing conversations with known clients, project communications",
			LabelPath:   LabelNamespace + "/Existing-Client",
		},
		Other: {
			Description: "Everything else that doesn't fit the above categories",
			LabelPath:   LabelNamespace + "/Other",
		},
	}, Other)
}

// Valid reports whether c is a member of the taxonomy.
func (t *Taxonomy) Valid(c Category) bool {
	_, ok := t.entries[c]
	return ok
}

// Normalize lower-cases and trims a raw model response and validates it
// against the taxonomy. The boolean is false for tokens outside the
// set.
func (t *Taxonomy) Normalize(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid(c) {
		return "", false
	}
	return c, true
}

// LabelPath returns the hierarchical label path for a category.
func (t *Taxonomy) LabelPath(c Category) (string, bool) {
	e, ok := t.entries[c]
	return e.LabelPath, ok
}

// Categories returns the members of the taxonomy in sorted order so
// prompts are deterministic.
func (t *Taxonomy) Categories() []Category {
	cats := make([]Category, 0, len(t.entries))
	for c := range t.entries {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// PromptList renders the taxonomy as a bulleted "name: description"
// list for inclusion in a classification prompt.
func (t *Taxonomy) PromptList() string {
	var b strings.Builder
	for i, c := range t.Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(string(c))
		b.WriteString(": ")
		b.WriteString(t.entries[c].Description)
	}
	return b.String()
}

// IsClientCategory reports whether the category feeds the client
// context stage.
func IsClientCategory(c Category) bool {
	return c == NewClientInquiry || c == ExistingClient
}
