package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-workboard/components/dashboard/commands"
	"github.com/goliatone/go-workboard/components/dedupe"
)

type dedupeCmd struct {
	Owner  string `required:"" help:"Owner id whose products are deduplicated."`
	DryRun bool   `name:"dry-run" help:"Report duplicate groups without deleting."`
}

func (cmd *dedupeCmd) Run(ctx context.Context, g *Globals) error {
	if err := ownerRequired(cmd.Owner); err != nil {
		return err
	}
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.DryRun {
		records, err := a.products.ListRecords(ctx, cmd.Owner)
		if err != nil {
			return fmt.Errorf("workboardctl: list products: %w", err)
		}
		groups, _ := dedupe.Plan(records)
		return printSummary(os.Stdout, dedupe.Summarize(groups), true)
	}

	var summary dedupe.Summary
	command := commands.NewRemoveDuplicatesCommand(a.job, a.telemetry, a.emitter())
	if err := command.Execute(ctx, commands.RemoveDuplicatesInput{OwnerID: cmd.Owner, Result: &summary}); err != nil {
		return err
	}
	return printSummary(os.Stdout, summary, false)
}

func printSummary(w io.Writer, summary dedupe.Summary, dryRun bool) error {
	out := struct {
		Message string `json:"message"`
		DryRun  bool   `json:"dryRun,omitempty"`
		dedupe.Summary
	}{Message: summary.Message("products"), DryRun: dryRun, Summary: summary}
	if dryRun {
		out.Message = fmt.Sprintf("Found %d duplicate groups", summary.DuplicateGroups)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
