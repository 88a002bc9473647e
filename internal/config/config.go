// Package config loads dtoverlay settings from defaults, an optional TOML
// file and DTOVERLAY_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by [Load].
// DTOVERLAY_PLATFORM_MODEL_PATH maps to platform.model_path.
const EnvPrefix = "DTOVERLAY_"

// FileName is the config file looked up in the XDG config directories.
const FileName = "dtoverlay/config.toml"

// Config holds all dtoverlay settings.
type Config struct {
	Platform PlatformConfig `koanf:"platform"`
	Overlays OverlaysConfig `koanf:"overlays"`
}

// PlatformConfig locates the firmware-exposed board identity.
type PlatformConfig struct {
	Path      string `koanf:"path"`
	ModelPath string `koanf:"model_path"`
}

// OverlaysConfig locates overlay sources.
type OverlaysConfig struct {
	Dir        string   `koanf:"dir"`
	Extensions []string `koanf:"extensions"`
}

// Defaults returns the built-in settings as a flat key map.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"platform.path":       "/proc/device-tree/compatible",
		"platform.model_path": "/proc/device-tree/model",
		"overlays.dir":        "/boot/overlays",
		"overlays.extensions": []string{".dts", ".dtso"},
	}
}

// Load builds the configuration. If path is empty, the XDG config
// directories are searched for [FileName] and a missing file is ignored.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = searchConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey turns DTOVERLAY_SECTION_SOME_KEY into section.some_key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

func searchConfigFile() string {
	path, err := xdg.SearchConfigFile(FileName)
	if err != nil {
		return ""
	}
	return path
}

func (c *Config) validate() error {
	var errs []error
	if c.Platform.Path == "" {
		errs = append(errs, errors.New("platform.path must not be empty"))
	}
	for i, ext := range c.Overlays.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			errs = append(errs, fmt.Errorf("overlays.extensions[%d] must not be empty", i))
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Overlays.Extensions[i] = ext
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
