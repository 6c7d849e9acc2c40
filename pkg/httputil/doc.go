// Package httputil fetches datasets and manifests from remote hosts.
//
// A dataset host serves a manifest.json and the dataset files next to it,
// the same layout a local datasets directory has:
//
//	https://example.org/debates/manifest.json
//	https://example.org/debates/transit.json
//
// [Client] retries transient failures (network errors, 5xx and 429
// responses) with exponential backoff, bounds response sizes, and maps
// HTTP failures onto the argwheel error codes:
//
//	client := httputil.NewClient()
//	names, err := client.Manifest(ctx, "https://example.org/debates/")
//	data, err := client.Get(ctx, httputil.ResolveURL("https://example.org/debates/", names[0]))
package httputil
