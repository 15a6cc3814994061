package main

import (
	"os"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}
