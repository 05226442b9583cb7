package models

import (
	"bytes"
	"slices"
	"time"

	"github.com/pkg/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StrategyOffset = "offset"
	StrategyKeyset = "keyset"
)

// RunConfig type is used to describe config for one regeneration run.
type RunConfig struct {
	Database       DatabaseConfig `json:"database"        yaml:"database"`
	PageSize       uint64         `json:"page_size"       yaml:"page_size"       env:"RETOKEN_PAGE_SIZE"`
	FetchStrategy  string         `json:"fetch_strategy"  yaml:"fetch_strategy"  env:"RETOKEN_FETCH_STRATEGY"`
	CheckpointPath string         `json:"checkpoint_path" yaml:"checkpoint_path" env:"RETOKEN_CHECKPOINT_PATH"`
	Retry          RetryConfig    `json:"retry"           yaml:"retry"`
}

// DatabaseConfig type is used to describe ticket store connection config.
type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver" env:"RETOKEN_DB_DRIVER"`
	DSN    string `json:"dsn"    yaml:"dsn"    env:"RETOKEN_DB_DSN"`
}

// RetryConfig type is used to describe bounded retry policy for transient
// store errors within a single page.
type RetryConfig struct {
	Attempts int           `json:"attempts" yaml:"attempts"`
	Delay    time.Duration `json:"delay"    yaml:"delay"`
}

func (m *RunConfig) ParseFromFile(path string) error {
	if path != "" {
		err := DecodeFile(path, m)
		if err != nil {
			return errors.WithMessagef(err, "failed to parse run config file %q", path)
		}
	}

	return m.PostProcess()
}

func (m *RunConfig) ParseFromJSON(data []byte) error {
	err := DecodeReader("json", bytes.NewReader(data), m)
	if err != nil {
		return errors.WithMessage(err, "failed to parse run config")
	}

	return m.PostProcess()
}

func (m *RunConfig) PostProcess() error {
	m.FillDefaults()

	errs := m.Validate()
	if len(errs) != 0 {
		return errors.Errorf("failed to validate run config:\n%v", parseErrsToString(errs))
	}

	return nil
}

func (m *RunConfig) FillDefaults() {
	if m.PageSize == 0 {
		m.PageSize = 1000
	}

	if m.FetchStrategy == "" {
		m.FetchStrategy = StrategyOffset
	}

	if m.CheckpointPath == "" {
		m.CheckpointPath = ".retoken/checkpoint.json"
	}

	m.Database.FillDefaults()
	m.Retry.FillDefaults()
}

func (m *RunConfig) Validate() []error {
	var errs []error

	if !slices.Contains([]string{StrategyOffset, StrategyKeyset}, m.FetchStrategy) {
		errs = append(errs, errors.Errorf("unknown fetch strategy: %s", m.FetchStrategy))
	}

	dbErrs := m.Database.Validate()
	if len(dbErrs) != 0 {
		errs = append(errs, errors.New("failed to validate database configuration:"))
		errs = append(errs, dbErrs...)
	}

	retryErrs := m.Retry.Validate()
	if len(retryErrs) != 0 {
		errs = append(errs, errors.New("failed to validate retry configuration:"))
		errs = append(errs, retryErrs...)
	}

	return errs
}

func (c *DatabaseConfig) FillDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}

	if c.DSN == "" && c.Driver == DriverSQLite {
		c.DSN = "file:tickets.db"
	}
}

func (c *DatabaseConfig) Validate() []error {
	var errs []error

	if !slices.Contains([]string{DriverSQLite, DriverPostgres}, c.Driver) {
		errs = append(errs, errors.Errorf("unknown database driver: %s", c.Driver))
	}

	if c.DSN == "" {
		errs = append(errs, errors.New("database DSN should not be empty"))
	}

	return errs
}

func (c *RetryConfig) FillDefaults() {
	if c.Attempts == 0 {
		c.Attempts = 3
	}

	if c.Delay == 0 {
		c.Delay = 500 * time.Millisecond //nolint:mnd
	}
}

func (c *RetryConfig) Validate() []error {
	var errs []error

	if c.Attempts < 1 {
		errs = append(errs, errors.Errorf("retry attempts should be at least 1, got %d", c.Attempts))
	}

	if c.Delay < 0 {
		errs = append(errs, errors.Errorf("retry delay should not be negative, got %v", c.Delay))
	}

	return errs
}
