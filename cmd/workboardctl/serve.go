package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dashboard/commands"
	"github.com/goliatone/go-workboard/components/dashboard/gorouter"
	"github.com/goliatone/go-workboard/components/dashboard/httpapi"
)

type serveCmd struct {
	Addr     string   `help:"Listen address. Overrides server.addr."`
	BasePath string   `name:"base-path" help:"Route prefix. Overrides server.base_path."`
	Seed     []string `help:"Owner ids whose default layouts are persisted before serving."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}
	base := a.cfg.Server.BasePath
	if cmd.BasePath != "" {
		base = cmd.BasePath
	}

	if len(cmd.Seed) > 0 {
		seed := commands.NewSeedLayoutCommand(a.service, a.telemetry)
		if err := seed.Execute(ctx, commands.SeedLayoutInput{Owners: cmd.Seed}); err != nil {
			return fmt.Errorf("workboardctl: seed layouts: %w", err)
		}
	}

	server := router.NewFiberAdapter()
	err = gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: dashboard.NewController(a.service, dashboard.WithTranslations(a.service.Catalog().Translations())),
		API:        httpapi.NewCommandExecutor(a.service, a.telemetry),
		Dedupe: &httpapi.DedupeHandler{
			Tokens:  a.tokens,
			Command: commands.NewRemoveDuplicatesCommand(a.job, a.telemetry, a.emitter()),
			Logger:  &a.logger,
		},
		Broadcast:      a.broadcast,
		ViewerResolver: gorouter.TokenViewerResolver(a.tokens),
		BasePath:       base,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", addr).Str("base_path", base).Msg("workboard listening")
		errCh <- server.Serve(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.logger.Info().Msg("shutting down")
	return server.Shutdown(shutdownCtx)
}
