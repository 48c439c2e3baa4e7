// Package router mounts the service handler below its base path and wraps it
// with validation against the merged OpenAPI document, CORS, timeouts and
// request logging. Operational handlers such as health checks are mounted
// next to it without validation. ExampleNew_customOptions demonstrates how to
// combine built-in and custom middlewares.
package router
