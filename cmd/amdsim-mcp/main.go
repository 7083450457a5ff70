package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/amdsim/internal/config"
	amdmcp "github.com/peterkuimelis/amdsim/internal/mcp"
)

func main() {
	defaults, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scenarios := flag.String("scenarios", defaults.Scenarios, "path to scenarios YAML file")
	flag.Parse()
	defaults.Scenarios = *scenarios

	amdmcp.SetDefaults(defaults)

	s := server.NewMCPServer("amdsim", "1.0.0")
	amdmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
