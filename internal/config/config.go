// Package config loads oneshot settings from an optional YAML file and ONESHOT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"oneshot/internal/catalog"
	"oneshot/pkg/runtime"
)

const (
	// EnvPrefix prefixes every environment override, e.g. ONESHOT_IMAGE.
	EnvPrefix = "ONESHOT"

	defaultRuntime = "podman"
	defaultBinary  = "podman"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Same spellings the --cap-add flag accepts.
	if err := validate.RegisterValidation("capability", func(fl validator.FieldLevel) bool {
		_, err := runtime.ParseCapability(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
}

// Settings are the defaults applied before command-line flags.
type Settings struct {
	Image        string          `mapstructure:"image" validate:"required"`
	OutputDir    string          `mapstructure:"output_dir" validate:"omitempty,dir"`
	Capabilities []string        `mapstructure:"cap_add" validate:"dive,capability"`
	Runtime      RuntimeSettings `mapstructure:"runtime"`
	Images       []ImageEntry    `mapstructure:"images" validate:"dive"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// RuntimeSettings configure the container runtime adapter.
type RuntimeSettings struct {
	Name   string `mapstructure:"name" validate:"required,oneof=podman"`
	Binary string `mapstructure:"binary" validate:"required"`
}

// ImageEntry adds an image to the known-image catalog.
type ImageEntry struct {
	Name string `mapstructure:"name" validate:"required"`
	URL  string `mapstructure:"url" validate:"required"`
	Tags string `mapstructure:"tags"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "oneshot", "config.yaml"), nil
}

// Load reads settings. An explicit path must exist; without one the default path is
// used if present.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("image", catalog.DefaultImage)
	v.SetDefault("output_dir", "")
	v.SetDefault("cap_add", []string{})
	v.SetDefault("runtime.name", defaultRuntime)
	v.SetDefault("runtime.binary", defaultBinary)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if source != "" {
		v.SetConfigFile(source)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("config file not found: %s", source)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file - malformed YAML: %w", err)
	}
	settings.Source = source

	if err := validate.Struct(&settings); err != nil {
		return nil, formatValidationError(err)
	}

	return &settings, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return "", fmt.Errorf("config file not found: %s", path)
		}
		return path, nil
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(defaultPath); err != nil {
		return "", nil
	}
	return defaultPath, nil
}

// Catalog returns the built-in catalog extended with configured images.
func (s *Settings) Catalog() (*catalog.Catalog, error) {
	c := catalog.Default()
	for _, entry := range s.Images {
		if err := c.Add(catalog.NewImage(entry.Name, entry.URL, entry.Tags)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, formatFieldError(e))
		}

		if len(errorMessages) == 1 {
			return fmt.Errorf("validation error: %s", errorMessages[0])
		}

		result := "validation errors:\n"
		for _, msg := range errorMessages {
			result += fmt.Sprintf("  - %s\n", msg)
		}
		return fmt.Errorf("%s", result)
	}
	return fmt.Errorf("validation failed: %w", err)
}

// formatFieldError formats a single validation error into a user-friendly message.
func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required but missing", field)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "capability":
		return fmt.Sprintf("field '%s' must be a capability (net-raw, net-admin), got '%v'", field, e.Value())
	case "dir":
		return fmt.Sprintf("field '%s' must be an existing directory, got '%v'", field, e.Value())
	default:
		return fmt.Sprintf("field '%s' failed validation (%s)", field, e.Tag())
	}
}
