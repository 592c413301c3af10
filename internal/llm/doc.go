// Package llm provides the inference provider clients used by the
// classification, context synthesis, extraction and drafting stages.
//
// Two backends are supported: OpenAI through the go-openai SDK and
// Anthropic through its REST API. Both satisfy the Provider interface,
// which returns plain completion text; callers validate and parse the
// text themselves. Provider failures carry an ErrorKind so the
// fallback chain can distinguish transport problems from malformed
// output.
package llm
