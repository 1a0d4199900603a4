package repository

import (
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
}
