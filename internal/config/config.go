package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by winpack commands.
type Config struct {
	// AppConfig is the base application document.
	AppConfig string `yaml:"app_config" mapstructure:"app_config"`
	// AppConfigOverride is the optional Windows override of AppConfig.
	AppConfigOverride string `yaml:"app_config_override" mapstructure:"app_config_override"`
	// PackagingConfig is the packaging document with capabilities and extensions.
	PackagingConfig string `yaml:"packaging_config" mapstructure:"packaging_config"`
	// Template is a custom manifest template. Empty selects the built-in one.
	Template string `yaml:"template,omitempty" mapstructure:"template"`
	// OutputDir receives one sub-directory per architecture.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	// Architectures lists the processor architectures to build for.
	Architectures []string `yaml:"architectures" mapstructure:"architectures"`
	// MinVersion is the minimum supported platform version.
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
	// Tools locates the external packaging binaries.
	Tools Tools `yaml:"tools" mapstructure:"tools"`
}

// Tools locates the external packaging binaries.
type Tools struct {
	MakeAppx string `yaml:"makeappx" mapstructure:"makeappx"`
	MakePri  string `yaml:"makepri" mapstructure:"makepri"`
	SignTool string `yaml:"signtool" mapstructure:"signtool"`
}

const (
	// DefaultConfigFilename is the default settings file name.
	DefaultConfigFilename = "winpack.yaml"

	// DefaultAppConfig is the default base application document.
	DefaultAppConfig = "app.json"

	// DefaultAppConfigOverride is the default Windows override document.
	DefaultAppConfigOverride = "app.windows.json"

	// DefaultPackagingConfig is the default packaging document.
	DefaultPackagingConfig = "packaging.json"

	// DefaultOutputDir is where manifests and packages are written.
	DefaultOutputDir = "dist/msix"

	// DefaultMinVersion is Windows 10 1809.
	DefaultMinVersion = "10.0.17763.0"

	// DefaultFilePermissions is the permission for files written by winpack.
	DefaultFilePermissions = 0o644

	// DefaultDirPermissions is the permission for directories created by winpack.
	DefaultDirPermissions = 0o755

	envPrefix = "WINPACK"
)

//nolint:gochecknoglobals // Fixed platform vocabulary.
var (
	// DefaultArchitectures is used when no architecture is configured.
	DefaultArchitectures = []string{"x64"}

	// SupportedArchitectures lists the processor architectures the manifest accepts.
	SupportedArchitectures = mapset.NewSet("x64", "x86", "arm64", "arm", "neutral")

	minVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnsupportedArchitecture is returned for architectures outside SupportedArchitectures.
	errUnsupportedArchitecture = errors.New("unsupported architecture")
	// errInvalidMinVersion is returned when MinVersion is not four numeric segments.
	errInvalidMinVersion = errors.New("minimum version must have four numeric segments")
)

// Default returns settings populated with defaults.
func Default() *Config {
	cfg := new(Config)
	applyDefaults(cfg)

	return cfg
}

// Load reads settings from path, applies WINPACK_ environment overrides and validates them.
// A missing file at the default path is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	path = filepath.Clean(path)

	_, err := os.Stat(path)

	switch {
	case err == nil:
		v.SetConfigFile(path)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No settings file: defaults and environment only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks architectures and the minimum version.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	applyDefaults(settings)

	for i, arch := range settings.Architectures {
		arch = strings.ToLower(strings.TrimSpace(arch))
		if !SupportedArchitectures.Contains(arch) {
			return fmt.Errorf("%w: %q", errUnsupportedArchitecture, arch)
		}

		settings.Architectures[i] = arch
	}

	if !minVersionPattern.MatchString(settings.MinVersion) {
		return fmt.Errorf("%w: %q", errInvalidMinVersion, settings.MinVersion)
	}

	return nil
}

func applyDefaults(settings *Config) {
	if settings.AppConfig == "" {
		settings.AppConfig = DefaultAppConfig
	}

	if settings.AppConfigOverride == "" {
		settings.AppConfigOverride = DefaultAppConfigOverride
	}

	if settings.PackagingConfig == "" {
		settings.PackagingConfig = DefaultPackagingConfig
	}

	if settings.OutputDir == "" {
		settings.OutputDir = DefaultOutputDir
	}

	if len(settings.Architectures) == 0 {
		settings.Architectures = append([]string(nil), DefaultArchitectures...)
	}

	if settings.MinVersion == "" {
		settings.MinVersion = DefaultMinVersion
	}

	if settings.Tools.MakeAppx == "" {
		settings.Tools.MakeAppx = "makeappx.exe"
	}

	if settings.Tools.MakePri == "" {
		settings.Tools.MakePri = "makepri.exe"
	}

	if settings.Tools.SignTool == "" {
		settings.Tools.SignTool = "signtool.exe"
	}
}

// setDefaults registers every key with viper so environment overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("app_config", defaults.AppConfig)
	v.SetDefault("app_config_override", defaults.AppConfigOverride)
	v.SetDefault("packaging_config", defaults.PackagingConfig)
	v.SetDefault("template", defaults.Template)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("architectures", defaults.Architectures)
	v.SetDefault("min_version", defaults.MinVersion)
	v.SetDefault("tools.makeappx", defaults.Tools.MakeAppx)
	v.SetDefault("tools.makepri", defaults.Tools.MakePri)
	v.SetDefault("tools.signtool", defaults.Tools.SignTool)
}
