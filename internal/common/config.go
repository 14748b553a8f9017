package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/survey-tabulator/constants"
)

// Config holds all application configuration
type Config struct {
	GCP     GCPConfig
	Paths   PathsConfig
	Extract ExtractConfig
	Ledger  LedgerConfig
}

// GCPConfig holds Vertex AI project settings
type GCPConfig struct {
	ProjectID string
	Region    string
}

// PathsConfig holds the filesystem layout for a run
type PathsConfig struct {
	Archive     string // input ZIP of scanned survey PDFs
	ExtractDir  string // where the archive is unpacked
	ArtifactDir string // per-document JSON records
	FieldsFile  string // ordered field specification
	Output      string // final XLSX path
}

// ExtractConfig holds model-call settings
type ExtractConfig struct {
	Model          string
	Temperature    float32
	Timeout        time.Duration
	RatingKeywords []string
}

// LedgerConfig holds run-ledger settings
type LedgerConfig struct {
	Path     string
	Disabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		GCP: GCPConfig{
			ProjectID: getEnv("GCP_PROJECT_ID", ""),
			Region:    getEnv("GCP_REGION", "us-central1"),
		},
		Paths: PathsConfig{
			Archive:     getEnv("SURVEY_ARCHIVE", ""),
			ExtractDir:  getEnv("EXTRACT_DIR", "data/extracted"),
			ArtifactDir: getEnv("ARTIFACT_DIR", "data/records"),
			FieldsFile:  getEnv("FIELDS_FILE", "fields.txt"),
			Output:      getEnv("OUTPUT_XLSX", "survey_data.xlsx"),
		},
		Extract: ExtractConfig{
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:    getEnvAsFloat32("EXTRACT_TEMPERATURE", 0.0),
			Timeout:        getEnvAsDuration("EXTRACT_TIMEOUT", 2*time.Minute),
			RatingKeywords: getEnvAsSlice("RATING_KEYWORDS", constants.DefaultRatingKeywords),
		},
		Ledger: LedgerConfig{
			Path:     getEnv("LEDGER_PATH", "data/runs.db"),
			Disabled: getEnvAsBool("LEDGER_DISABLED", false),
		},
	}
}

// fileConfig mirrors Config for the optional YAML overlay. Durations are
// strings ("90s", "2m") parsed with time.ParseDuration; pointer fields
// distinguish "absent" from explicit zero values.
type fileConfig struct {
	GCP struct {
		ProjectID string `yaml:"project_id"`
		Region    string `yaml:"region"`
	} `yaml:"gcp"`
	Paths struct {
		Archive     string `yaml:"archive"`
		ExtractDir  string `yaml:"extract_dir"`
		ArtifactDir string `yaml:"artifact_dir"`
		FieldsFile  string `yaml:"fields_file"`
		Output      string `yaml:"output"`
	} `yaml:"paths"`
	Extract struct {
		Model          string   `yaml:"model"`
		Temperature    *float32 `yaml:"temperature"`
		Timeout        string   `yaml:"timeout"`
		RatingKeywords []string `yaml:"rating_keywords"`
	} `yaml:"extract"`
	Ledger struct {
		Path     string `yaml:"path"`
		Disabled *bool  `yaml:"disabled"`
	} `yaml:"ledger"`
}

// ApplyFile overlays values from a YAML config file onto c. Keys absent from
// the file leave the current value in place.
func (c *Config) ApplyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapError(err, "read config file")
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return WrapError(err, "parse config file")
	}

	setString(&c.GCP.ProjectID, fc.GCP.ProjectID)
	setString(&c.GCP.Region, fc.GCP.Region)
	setString(&c.Paths.Archive, fc.Paths.Archive)
	setString(&c.Paths.ExtractDir, fc.Paths.ExtractDir)
	setString(&c.Paths.ArtifactDir, fc.Paths.ArtifactDir)
	setString(&c.Paths.FieldsFile, fc.Paths.FieldsFile)
	setString(&c.Paths.Output, fc.Paths.Output)
	setString(&c.Extract.Model, fc.Extract.Model)
	if fc.Extract.Temperature != nil {
		c.Extract.Temperature = *fc.Extract.Temperature
	}
	if fc.Extract.Timeout != "" {
		d, err := time.ParseDuration(fc.Extract.Timeout)
		if err != nil {
			return NewAppError("CONFIG_ERROR", "invalid extract.timeout", err)
		}
		c.Extract.Timeout = d
	}
	if len(fc.Extract.RatingKeywords) > 0 {
		c.Extract.RatingKeywords = fc.Extract.RatingKeywords
	}
	setString(&c.Ledger.Path, fc.Ledger.Path)
	if fc.Ledger.Disabled != nil {
		c.Ledger.Disabled = *fc.Ledger.Disabled
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated env var, trimming whitespace.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.GCP.ProjectID == "" {
		return NewAppError("CONFIG_ERROR", "GCP_PROJECT_ID is required", ErrInvalidInput)
	}
	if c.GCP.Region == "" {
		return NewAppError("CONFIG_ERROR", "GCP_REGION is required", ErrInvalidInput)
	}
	if c.Paths.Archive == "" {
		return NewAppError("CONFIG_ERROR", "survey archive path is required", ErrInvalidInput)
	}
	if c.Paths.FieldsFile == "" {
		return NewAppError("CONFIG_ERROR", "fields file path is required", ErrInvalidInput)
	}
	if c.Extract.Model == "" {
		return NewAppError("CONFIG_ERROR", "model name is required", ErrInvalidInput)
	}
	return nil
}
