// Package category defines the closed classification taxonomy and the
// mapping from categories to hierarchical Gmail label paths.
//
// The taxonomy is injected configuration rather than package state so
// the classifier and label applier can be exercised with alternate
// taxonomies in tests.
package category
