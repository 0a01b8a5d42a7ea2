package main

import "github.com/cmmoran/valuegen/cmd"

// version is set at build time with -ldflags "-X main.version=...".
var version = "devel"

func main() {
	cmd.Execute(version)
}
