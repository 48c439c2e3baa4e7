// Package probe turns the service dependencies (the extension fragments, the
// MongoDB catalog and the upstream data engine) into readiness checks. See
// ExampleNewCheckProbe and ExampleNewHTTPProbe for quick-start patterns.
package probe
