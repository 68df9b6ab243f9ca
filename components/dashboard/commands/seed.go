package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-workboard/components/dashboard"
)

// SeedLayoutInput lists the owners whose default layouts should be stored.
type SeedLayoutInput struct {
	Owners []string `json:"owners"`
}

// SeedLayoutCommand persists defaults for owners that have no record yet.
type SeedLayoutCommand struct {
	service   *dashboard.Service
	telemetry Telemetry
}

// NewSeedLayoutCommand wires dependencies.
func NewSeedLayoutCommand(service *dashboard.Service, telemetry Telemetry) *SeedLayoutCommand {
	return &SeedLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedLayoutInput] = (*SeedLayoutCommand)(nil)

// Execute runs the seed pipeline.
func (c *SeedLayoutCommand) Execute(ctx context.Context, msg SeedLayoutInput) error {
	if c.service == nil {
		return errors.New("seed command requires service")
	}
	if err := dashboard.SeedLayout(ctx, c.service, msg.Owners...); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.seed", map[string]any{"owners": len(msg.Owners)})
	return nil
}
