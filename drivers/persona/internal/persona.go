package driver

import (
	"context"
	"fmt"
	"sort"

	"github.com/datazip-inc/tap-persona/drivers/abstract"
	"github.com/datazip-inc/tap-persona/types"
	"github.com/datazip-inc/tap-persona/utils"
	"github.com/datazip-inc/tap-persona/utils/logger"
	"github.com/datazip-inc/tap-persona/utils/typeutils"
)

// Persona driver implementation
type Persona struct {
	client *restClient
	config *Config
	state  *types.State
}

func (p *Persona) GetConfigRef() abstract.Config {
	if p.config == nil {
		p.config = &Config{}
	}
	return p.config
}

func (p *Persona) Spec() any {
	return Config{}
}

func (p *Persona) Type() string {
	return "persona"
}

// Setup validates the config and probes the API with a minimal
// authenticated request so bad credentials fail the check command.
func (p *Persona) Setup(ctx context.Context) error {
	if err := p.config.Validate(); err != nil {
		return fmt.Errorf("failed to validate config: %s", err)
	}

	p.client = newRESTClient(p.config)

	if _, err := p.client.FetchPage(ctx, streamEndpoints["inquiries"], PageParams{Size: 1}); err != nil {
		return fmt.Errorf("failed to connect to persona api: %s", err)
	}

	logger.Info("Successfully connected to Persona API")
	return nil
}

func (p *Persona) SetupState(state *types.State) {
	p.state = state
}

func (p *Persona) GetStreamNames(_ context.Context) ([]string, error) {
	names := utils.MapKeys(streamEndpoints)
	sort.Strings(names)
	return names, nil
}

func (p *Persona) ProduceSchema(_ context.Context, stream string) (*types.Stream, error) {
	if _, found := streamEndpoints[stream]; !found {
		return nil, fmt.Errorf("unknown stream [%s]", stream)
	}
	return buildStream(stream), nil
}

// InitialCursorValue is the replication floor used when no prior state
// exists; nil means unbounded backfill.
func (p *Persona) InitialCursorValue(_ types.StreamInterface) any {
	if p.config.StartDate == "" {
		return nil
	}

	parsed, err := typeutils.ParseTimestamp(p.config.StartDate)
	if err != nil {
		// Validate catches this before any sync starts
		return nil
	}
	return parsed
}
