// Package requests contains HTTP request DTOs for the call broker.
// Call-specific request types are in the call subpackage.
package requests
