// Package client talks to the taskio gRPC API on behalf of the CLI.
//
// GRPCClient manages the connection, attaches the access token to every call
// through a unary interceptor, transparently refreshes an expired access
// token once using the refresh token, and maps gRPC status codes to the
// sentinel errors in errors.go so callers can use errors.Is.
package client
