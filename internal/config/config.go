// Package config loads extraction settings from a config file and
// defaults. The core never reads files or flags itself; it consumes a
// validated Settings value assembled here once, before traversal.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/doclet-labs/doclet/internal/derrors"
)

// DefaultConfigName is the config file looked up in the working
// directory when none is named explicitly.
const DefaultConfigName = ".doclet"

// Settings is the configuration surface the extraction run consumes.
type Settings struct {
	// Grammar selects the tag dictionary, all-or-nothing per run.
	Grammar string `mapstructure:"grammar" validate:"required,oneof=standard closure"`

	// AllowUnknownTags accepts unrecognized tags as free-text
	// annotations instead of reporting them.
	AllowUnknownTags bool `mapstructure:"allow_unknown_tags"`

	// Format and Output control database export.
	Format string `mapstructure:"format" validate:"required,oneof=yaml json"`
	Output string `mapstructure:"output"`

	// Access is the visibility filter applied before export.
	Access []string `mapstructure:"access" validate:"omitempty,dive,oneof=public protected private package all"`

	// IncludeUndocumented keeps doclets that have no parseable comment.
	IncludeUndocumented bool `mapstructure:"include_undocumented"`

	// JSONLogs switches diagnostics to structured JSON output.
	JSONLogs bool `mapstructure:"json_logs"`
}

// SetDefaults installs the default settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("grammar", "standard")
	v.SetDefault("allow_unknown_tags", false)
	v.SetDefault("format", "yaml")
	v.SetDefault("output", "-")
	v.SetDefault("access", []string{"all"})
	v.SetDefault("include_undocumented", false)
	v.SetDefault("json_logs", false)
}

// NewViper returns a viper instance with defaults and env binding
// installed.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("DOCLET")
	v.AutomaticEnv()
	return v
}

// Load reads settings from path, or from ./.doclet.{yaml,toml,json} if
// path is empty, falling back to pure defaults when no file exists. An
// explicitly named file must exist.
func Load(path string) (*Settings, error) {
	v := NewViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, derrors.Wrapf(err, "reading config %s", path)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !derrors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, derrors.Wrap(err, "reading config")
			}
		}
	}
	return FromViper(v)
}

// FromViper unmarshals and validates settings from v.
func FromViper(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, derrors.Wrap(err, "unmarshaling config")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return derrors.Wrap(err, "invalid configuration")
	}
	return nil
}

// AccessAllowed reports whether a doclet with the given access level
// passes the visibility filter. An empty level counts as public.
func (s *Settings) AccessAllowed(level string) bool {
	if level == "" {
		level = "public"
	}
	if len(s.Access) == 0 {
		return level != "private"
	}
	for _, a := range s.Access {
		if a == "all" || a == level {
			return true
		}
	}
	return false
}
