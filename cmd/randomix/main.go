package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	randomixcmd "github.com/louisbranch/randomix/internal/cmd/randomix"
)

func main() {
	cfg, err := randomixcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[RANDOMIX] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := randomixcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to run: %v", err)
	}
}
