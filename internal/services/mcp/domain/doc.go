// Package domain defines the MCP tools that solve and typeset equations.
//
// Handlers are transport-agnostic: the service package registers them on an
// MCP server and chooses stdio or HTTP.
package domain
