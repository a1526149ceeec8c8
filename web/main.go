package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	logger := core.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	webServer := server.NewServer(*port, logger)

	logger.Printf("Band raytracer web server")
	logger.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		logger.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
