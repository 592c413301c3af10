// Package server provides the Prometheus metrics endpoint that can be
// served alongside a pipeline run. Metrics live on their own listener
// so scraping never interferes with the pipeline itself.
package server
