package exporter

import (
	"survey-recon/internal/config"
	"survey-recon/internal/model"
)

// Exporter is the unified interface for all reporting strategies
type Exporter interface {
	Name() string
	Export(r *model.Report, cfg *config.Config) error
}
