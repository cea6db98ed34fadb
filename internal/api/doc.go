// Package api handles incoming HTTP requests for the academic records
// API: routing, request decoding and validation, and translation of
// service errors into HTTP status codes and safe response bodies.
package api
