// tokforge/pkg/build/config.go
package build

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/tokforge/tokforge/pkg/tokens"
)

// Config is a build's declarative settings, loadable from a tokforge.yaml in
// the project directory, the current directory, or the XDG user config
// directory ($XDG_CONFIG_HOME/tokforge/tokforge.yaml), with CLI flags taking
// precedence over any of them (spec §2 "Configuration"). Grounded on
// bennypowers-cem's cmd/root.go viper wiring, generalized with an XDG
// fallback search path (adrg/xdg) since tokforge isn't always run from a
// project directory with its own config file.
type Config struct {
	Resolver         string            `mapstructure:"resolver"`
	OutputDir        string            `mapstructure:"outputDir"`
	Format           string            `mapstructure:"format"`
	Modifiers          map[string]string `mapstructure:"modifiers"`
	CustomizableOnly   bool              `mapstructure:"customizableOnly"`
	StrictLayers       bool              `mapstructure:"strictLayers"`
	PreserveReferences bool              `mapstructure:"preserveReferences"`
}

// DefaultConfig returns the settings a build uses when neither a config file
// nor a flag supplies a value.
func DefaultConfig() Config {
	return Config{
		Resolver:  "resolver.json",
		OutputDir: "dist",
		Format:    "css",
	}
}

// LoadConfig reads tokforge's configuration, searching (in ascending
// precedence) the XDG user config directory, the current/named project
// directory, and finally an explicit configPath if one was given. Missing
// config files are not an error — every field already has a Config zero
// value or DefaultConfig fallback; a malformed file that IS found is
// reported as CodeConfiguration (spec §6 exit code 3).
func LoadConfig(projectDir, configPath string) (Config, error) {
	v := viper.New()
	v.SetConfigName("tokforge")
	v.SetConfigType("yaml")

	// viper takes the first search path that holds a config file, so the
	// paths are added from highest to lowest precedence.
	if projectDir != "" {
		v.AddConfigPath(projectDir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "tokforge"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, tokens.NewError(tokens.CodeConfiguration, "malformed tokforge configuration: %v", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return cfg, nil
		}
		return Config{}, tokens.NewError(tokens.CodeConfiguration, "malformed tokforge configuration: %v", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, tokens.NewError(tokens.CodeConfiguration, "malformed tokforge configuration: %v", err)
	}
	return cfg, nil
}
