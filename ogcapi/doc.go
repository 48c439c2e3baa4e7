// Package ogcapi serves the hypermedia documents of a service over HTTP: the
// landing page, the merged API description, the conformance declaration and
// the collections, each in every negotiated representation. It also exposes
// status, liveness, readiness and version endpoints for operators.
//
// Routes returns the service routes relative to the service root; mount them
// with router.WithBasePath. OperationalRoutes lists the operator endpoints.
package ogcapi
