// Package main starts the portfolio site process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	portfoliocmd "github.com/louisbranch/portfolio/internal/cmd/portfolio"
	"github.com/louisbranch/portfolio/internal/platform/config"
)

func main() {
	cfg, err := portfoliocmd.ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[PORTFOLIO] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := portfoliocmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
