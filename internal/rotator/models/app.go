package models

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// AppConfig type is used to describe application config.
type AppConfig struct {
	LogFormat  string     `json:"log_format" yaml:"log_format" env:"RETOKEN_LOG_FORMAT"`
	HTTPConfig HTTPConfig `json:"http"       yaml:"http"`
}

func (m *AppConfig) ParseFromFile(path string) error {
	if path != "" {
		err := DecodeFile(path, m)
		if err != nil {
			return errors.WithMessagef(err, "failed to parse app config file %q", path)
		}
	}

	err := m.PostProcess()
	if err != nil {
		return errors.WithMessagef(err, "failed to post process app config file %q", path)
	}

	return nil
}

func (m *AppConfig) PostProcess() error {
	m.FillDefaults()

	errs := m.Validate()
	if len(errs) != 0 {
		return errors.Errorf("failed to validate app config:\n%v", parseErrsToString(errs))
	}

	return nil
}

func (m *AppConfig) FillDefaults() {
	if m.LogFormat == "" {
		m.LogFormat = "text"
	}

	m.HTTPConfig.FillDefaults()
}

func (m *AppConfig) Validate() []error {
	var errs []error

	if !slices.Contains([]string{"text", "json"}, m.LogFormat) {
		errs = append(errs, errors.Errorf("unknown log format: %s", m.LogFormat))
	}

	httpParamsErrs := m.HTTPConfig.Validate()
	if len(httpParamsErrs) != 0 {
		errs = append(errs, errors.New("failed to validate HTTP configuration:"))
		errs = append(errs, httpParamsErrs...)
	}

	return errs
}

// HTTPConfig type is used to describe config for the HTTP API server.
type HTTPConfig struct {
	ListenAddress string        `json:"listen_address" yaml:"listen_address" env:"RETOKEN_LISTEN_ADDRESS"`
	ReadTimeout   time.Duration `json:"read_timeout"   yaml:"read_timeout"`
	WriteTimeout  time.Duration `json:"write_timeout"  yaml:"write_timeout"`
	IdleTimeout   time.Duration `json:"idle_timeout"   yaml:"idle_timeout"`
}

func (c *HTTPConfig) FillDefaults() {
	if c.ListenAddress == "" {
		c.ListenAddress = ":8080"
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = time.Minute
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = time.Minute
	}

	if c.IdleTimeout == 0 {
		c.IdleTimeout = time.Minute
	}
}

func (c *HTTPConfig) Validate() []error {
	var errs []error

	if c.ReadTimeout < 0 {
		errs = append(errs, errors.Errorf("read timeout should be greater than 0, got %v", c.ReadTimeout))
	}

	if c.WriteTimeout < 0 {
		errs = append(errs, errors.Errorf("write timeout should be greater than 0, got %v", c.WriteTimeout))
	}

	if c.IdleTimeout < 0 {
		errs = append(errs, errors.Errorf("idle timeout should be greater than 0, got %v", c.IdleTimeout))
	}

	return errs
}
