package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/goliatone/go-workboard/components/dashboard"
	"github.com/goliatone/go-workboard/components/dashboard/commands"
	"github.com/goliatone/go-workboard/components/dashboard/queries"
)

type layoutCmd struct {
	Show  layoutShowCmd  `cmd:"" help:"Print the resolved layout for an owner."`
	Reset layoutResetCmd `cmd:"" help:"Restore default widgets or a table's default columns."`
	Seed  layoutSeedCmd  `cmd:"" help:"Persist default layouts for owners with no stored record."`
}

type layoutShowCmd struct {
	Owner string `required:"" help:"Owner id."`
	Table string `help:"Only print the columns of this table."`
}

func (cmd *layoutShowCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	viewer := dashboard.ViewerContext{UserID: cmd.Owner}
	var out any
	if cmd.Table != "" {
		out, err = queries.NewColumnLayoutQuery(a.service).Query(ctx, queries.ColumnLayoutInput{Viewer: viewer, Table: cmd.Table})
	} else {
		out, err = queries.NewLayoutQuery(a.service).Query(ctx, viewer)
	}
	if err != nil {
		return err
	}
	return writeJSON(out)
}

type layoutResetCmd struct {
	Owner string `required:"" help:"Owner id."`
	Table string `help:"Reset this table's columns instead of the widgets."`
}

func (cmd *layoutResetCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	reset := commands.NewResetLayoutCommand(a.service, a.telemetry)
	viewer := dashboard.ViewerContext{UserID: cmd.Owner}
	if err := reset.Execute(ctx, commands.ResetLayoutInput{Viewer: viewer, Table: cmd.Table}); err != nil {
		return err
	}
	a.logger.Info().Str("owner", cmd.Owner).Str("table", cmd.Table).Msg("layout reset")
	return nil
}

type layoutSeedCmd struct {
	Owner []string `required:"" help:"Owner ids to seed (repeat the flag)."`
}

func (cmd *layoutSeedCmd) Run(ctx context.Context, g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()
	return commands.NewSeedLayoutCommand(a.service, a.telemetry).Execute(ctx, commands.SeedLayoutInput{Owners: cmd.Owner})
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
