package tools

import (
	"github.com/fwerner/schemaprobe/internal/config"
	"github.com/fwerner/schemaprobe/internal/extract"
	"github.com/fwerner/schemaprobe/internal/validate"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config     *config.Config
	Extract    *extract.Engine
	Validators *validate.Cache
}

// NewDeps wires the default dependency set from configuration.
func NewDeps(cfg *config.Config) (*Deps, error) {
	validators, err := validate.NewCache(cfg.ValidatorCacheSize)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Config:     cfg,
		Extract:    extract.NewEngine(),
		Validators: validators,
	}, nil
}
