package storage

import (
	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/domain"
)

// Saver persists the output of a run
type Saver interface {
	Save(output *domain.RunOutput) error
}

// Storage persists and loads run output (e.g. for the faills viewer).
type Storage interface {
	Saver
	Load() (*domain.RunOutput, error)
}

// JSONStorage stores run output in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
