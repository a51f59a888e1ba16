// Package branding holds the product name shown to users and MCP clients.
package branding

// AppName is the display name of the product.
const AppName = "Catering.Space"
