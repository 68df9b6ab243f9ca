// Command workboardctl serves workboard layouts and runs maintenance tasks
// against the configured store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// Globals are flags shared by every subcommand.
type Globals struct {
	Config    string `short:"c" type:"path" help:"Config file (yaml, toml or json). Defaults to ./workboard.*."`
	LogLevel  string `name:"log-level" help:"Override log.level (trace, debug, info, warn, error)."`
	LogFormat string `name:"log-format" help:"Override log.format (json or console)."`
}

type cli struct {
	Globals

	Serve   serveCmd   `cmd:"" help:"Serve layout, mutation, dedupe and refresh endpoints."`
	Dedupe  dedupeCmd  `cmd:"" help:"Remove duplicate products for an owner."`
	Layout  layoutCmd  `cmd:"" help:"Inspect, reset or seed stored layouts."`
	Token   tokenCmd   `cmd:"" help:"Manage API tokens in the local database."`
	Catalog catalogCmd `cmd:"" help:"Edit catalog manifests."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c cli
	kctx := kong.Parse(&c,
		kong.Name("workboardctl"),
		kong.Description("Per-user dashboard layouts and duplicate cleanup."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&c.Globals),
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
