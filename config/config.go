// Package config loads the configuration of cenum.
//
// Values are merged in the following order, later ones win:
// defaults, the global config, the local config, environment variables and flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	version "github.com/hashicorp/go-version"
	"github.com/ktr0731/cenum/logger"
	"github.com/ktr0731/cenum/meta"
	"github.com/ktr0731/cenum/present"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zchee/go-xdgbasedir"
)

const (
	globalConfigName = "config.toml"
	localConfigName  = ".cenum.toml"
	envPrefix        = "cenum"
)

type Config struct {
	Default *Default `toml:"default"`
	Output  *Output  `toml:"output"`
	Log     *Log     `toml:"log"`
	Meta    *Meta    `toml:"meta"`
}

type Default struct {
	ProtoPath []string `toml:"protoPath"`
	ProtoFile []string `toml:"protoFile"`
}

type Output struct {
	Format string `toml:"format"`
	// Dir is the output directory. If it is empty, outputs are written to stdout.
	Dir       string `toml:"dir"`
	DLLExport string `toml:"dllexport"`
	GoPackage string `toml:"goPackage"`
}

type Log struct {
	Prefix string `toml:"prefix"`
}

type Meta struct {
	ConfigVersion string `toml:"configVersion"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"path":       "default.protoPath",
	"format":     "output.format",
	"out":        "output.dir",
	"dllexport":  "output.dllexport",
	"go-package": "output.goPackage",
}

func setDefault(v *viper.Viper) {
	v.SetDefault("default.protoPath", []string{})
	v.SetDefault("default.protoFile", []string{})
	v.SetDefault("output.format", present.FormatC)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.dllexport", "")
	v.SetDefault("output.goPackage", "")
	v.SetDefault("log.prefix", "cenum: ")
	v.SetDefault("meta.configVersion", meta.Version.String())
}

// GlobalPath returns the path of the global config file.
func GlobalPath() string {
	return filepath.Join(xdgbasedir.ConfigHome(), meta.AppName, globalConfigName)
}

// Get returns the merged config. fs may be nil. Only flags defined in fs and
// listed in flagKeys override config values.
func Get(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefault(v)

	if p := GlobalPath(); fileExists(p) {
		logger.Printf("global config: %s", p)
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read the global config %s", p)
		}
	}

	local, err := lookupLocalConfig()
	if err != nil {
		return nil, err
	}
	if local != "" {
		logger.Printf("local config: %s", local)
		if err := mergeConfigFile(v, local); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind flag --%s", name)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := setupConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeConfigFile(v *viper.Viper, p string) error {
	f, err := os.Open(p)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", p)
	}
	defer f.Close()
	if err := v.MergeConfig(f); err != nil {
		return errors.Wrapf(err, "failed to merge the local config %s", p)
	}
	return nil
}

// setupConfig fills nil sections and expands '~' in paths.
func setupConfig(c *Config) error {
	if c.Default == nil {
		c.Default = &Default{}
	}
	if c.Output == nil {
		c.Output = &Output{}
	}
	if c.Log == nil {
		c.Log = &Log{}
	}
	if c.Meta == nil {
		c.Meta = &Meta{}
	}

	var err error
	for i, p := range c.Default.ProtoPath {
		if c.Default.ProtoPath[i], err = homedir.Expand(p); err != nil {
			return errors.Wrapf(err, "failed to expand proto path %s", p)
		}
	}
	for i, p := range c.Default.ProtoFile {
		if c.Default.ProtoFile[i], err = homedir.Expand(p); err != nil {
			return errors.Wrapf(err, "failed to expand proto file %s", p)
		}
	}
	if c.Output.Dir, err = homedir.Expand(c.Output.Dir); err != nil {
		return errors.Wrapf(err, "failed to expand output dir %s", c.Output.Dir)
	}
	return nil
}

// lookupLocalConfig finds the local config from the working directory to the
// project root, which is the nearest directory containing '.git'.
// It returns an empty string if the local config is not found.
func lookupLocalConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get the working directory")
	}
	for {
		if p := filepath.Join(dir, localConfigName); fileExists(p) {
			return p, nil
		}
		if fileExists(filepath.Join(dir, ".git")) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ValidationError is returned from Validate. Field is the config key of the invalid value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate validates c. All invalid values are reported.
func (c *Config) Validate() error {
	var result error
	if !isKnownFormat(c.Output.Format) {
		result = multierror.Append(result, &ValidationError{
			Field:  "output.format",
			Reason: fmt.Sprintf("unknown format '%s', available formats are %s", c.Output.Format, strings.Join(present.Formats(), ", ")),
		})
	}
	if len(c.Default.ProtoFile) == 0 {
		result = multierror.Append(result, &ValidationError{Field: "default.protoFile", Reason: "no input files"})
	}
	if c.Meta.ConfigVersion != "" {
		v, err := version.NewSemver(c.Meta.ConfigVersion)
		switch {
		case err != nil:
			result = multierror.Append(result, &ValidationError{Field: "meta.configVersion", Reason: err.Error()})
		case v.GreaterThan(meta.Version):
			result = multierror.Append(result, &ValidationError{
				Field:  "meta.configVersion",
				Reason: fmt.Sprintf("config version %s is newer than %s %s", v, meta.AppName, meta.Version),
			})
		}
	}
	return result
}

func isKnownFormat(f string) bool {
	for _, k := range present.Formats() {
		if f == k {
			return true
		}
	}
	return false
}
