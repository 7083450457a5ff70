package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/amdsim/internal/config"
	"github.com/peterkuimelis/amdsim/internal/web"
)

func main() {
	defaults, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	port := flag.Int("port", 8080, "HTTP port to listen on")
	scenarios := flag.String("scenarios", defaults.Scenarios, "path to scenarios YAML file")
	flag.Parse()
	defaults.Scenarios = *scenarios

	srv := web.NewServer(defaults)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("amdsim listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
