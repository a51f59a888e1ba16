// Package service wires the MCP stdio transport to the quote tool handlers.
//
// It owns the quote gRPC connection and its health monitoring; the meaning of
// each tool lives in the domain package.
package service
