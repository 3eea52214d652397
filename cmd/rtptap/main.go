package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	tap "m7s.live/tap/v4"
	"m7s.live/tap/v4/log"
)

var version = "dev"

func main() {
	conf := flag.String("c", "config.yaml", "config file")
	flag.Parse()
	if version != "dev" {
		tap.Version = version
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := tap.Run(ctx, *conf)
	log.Sync()
	if err != nil {
		log.Errorf("rtptap exit: %v", err)
		os.Exit(1)
	}
}
