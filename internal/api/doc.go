// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the internal application services, translating HTTP concerns to business
// operations. Every response uses the {message, data} envelope; internal
// error detail never leaves the process.
package api
