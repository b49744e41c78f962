// Package observability provides structured logging and Prometheus metrics
// for the source adapters.
//
// Create a logger from configuration:
//
//	logger := observability.NewLogger(observability.LoggingConfig{
//	    Level:  "debug",
//	    Format: "console",
//	    Output: "stderr",
//	})
//
// Register metrics on a registry and hand them to the adapters:
//
//	reg := prometheus.NewRegistry()
//	metrics := observability.NewMetrics("frontier_search", reg)
//	arxiv := search.NewArxiv(client, cfg, search.WithMetrics(metrics))
//
// Standard log fields: source, operation, url, attempt, status,
// result_count, duration.
package observability
