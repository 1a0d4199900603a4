package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/cloud-cost-ai-go/internal/domain/repository"
	"github.com/diillson/cloud-cost-ai-go/internal/shared/types"
	"github.com/diillson/cloud-cost-ai-go/pkg/logging"
	"github.com/pelletier/go-toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Campos ausentes ficam com o valor zero e são preenchidos pelos padrões da CLI.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, &types.ConfigError{Field: "config-file", Reason: fmt.Sprintf("unsupported format %q", fileExtension)}
	}

	normalize(&config)

	logging.Named("Config").Debug("configuration file loaded",
		zap.String("path", filePath),
		zap.String("format", strings.TrimPrefix(fileExtension, ".")))
	return &config, nil
}

// normalize padroniza os campos enumerados para comparação direta.
func normalize(c *types.Config) {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	for i, t := range c.ReportType {
		c.ReportType[i] = strings.ToLower(strings.TrimSpace(t))
	}
}
