// Package main starts the browser-facing equation solver.
//
// The process serves the solve page and its JSON API and forwards each
// equation to the remote solver service.
package main

import (
	webcmd "github.com/louisbranch/sympsolve/internal/cmd/web"
	entrypoint "github.com/louisbranch/sympsolve/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceWeb, webcmd.ParseConfig, webcmd.Run)
}
