package main

import (
	mcpcmd "github.com/louisbranch/sympsolve/internal/cmd/mcp"
	entrypoint "github.com/louisbranch/sympsolve/internal/platform/cmd"
)

// main starts the MCP server on stdio or HTTP.
func main() {
	entrypoint.Main(entrypoint.ServiceMCP, mcpcmd.ParseConfig, mcpcmd.Run)
}
