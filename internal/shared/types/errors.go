package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDataNotFound     = errors.New("cost data not found")
	ErrSchema           = errors.New("invalid cost data schema")
	ErrInsufficientData = errors.New("insufficient data for forecasting")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrNoProfilesFound  = errors.New("no AWS profiles found. Please configure AWS CLI first")
	ErrProfileNotFound  = errors.New("the specified profile was not found in AWS configuration")
	ErrUnknownSource    = errors.New("unknown cost data source")
)

// DataNotFoundError é retornado quando o arquivo de dados não existe.
type DataNotFoundError struct {
	Path string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("data file not found at %s", e.Path)
}

func (e *DataNotFoundError) Unwrap() error {
	return ErrDataNotFound
}

// SchemaError describes a cost file that is missing required columns or
// carries a row that cannot be parsed.
type SchemaError struct {
	Path    string
	Line    int
	Missing []string
	Reason  string
}

func (e *SchemaError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// InsufficientDataError indica que um serviço não tem observações suficientes
// para o modelo de previsão.
type InsufficientDataError struct {
	Service      string
	Observations int
	Required     int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("service %s has %d observations, forecasting requires at least %d",
		e.Service, e.Observations, e.Required)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}

// ConfigError reports an invalid option value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
