package gdocai

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the Document AI processor to call
type Config struct {
	ProjectID       string `yaml:"project_id"`
	Location        string `yaml:"location"`         // e.g. "us" or "eu"
	ProcessorID     string `yaml:"processor_id"`
	CredentialsFile string `yaml:"credentials_file"` // "" = GOOGLE_APPLICATION_CREDENTIALS or default credentials
}

// LoadConfig reads a YAML file and converts it to a Config
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Document AI config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse Document AI config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Document AI config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that all processor coordinates are set
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("no config given")
	}
	var errs []error
	if c.ProjectID == "" {
		errs = append(errs, errors.New("project_id is required"))
	}
	if c.Location == "" {
		errs = append(errs, errors.New("location is required"))
	}
	if c.ProcessorID == "" {
		errs = append(errs, errors.New("processor_id is required"))
	}
	return errors.Join(errs...)
}

// ProcessorName returns the resource name of the processor
func (c *Config) ProcessorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

// Endpoint returns the regional API endpoint of the processor
func (c *Config) Endpoint() string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", c.Location)
}

func (c *Config) credentialsFile() string {
	if c.CredentialsFile != "" {
		return c.CredentialsFile
	}
	return os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
}
