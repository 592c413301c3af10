// Package config loads pipeline configuration from the environment:
// provider credentials, artifact directories, the review confidence
// threshold and the per-call provider timeout.
package config
