// Package domain translates MCP tool calls into quote service RPCs.
//
// Each tool has an input type, a result type, a tool definition and a
// handler built over QuoteClient. Handlers bound every RPC with
// timeouts.GRPCRequest and forward the caller's locale so errors come back
// in the requested language.
package domain
