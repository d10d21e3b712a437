package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type loadOptions struct {
	fs        FileSystem
	sources   Sources
	envPrefix string
	defaults  map[string]any
	flags     *pflag.FlagSet
	flagKeys  map[string]string
}

// LoaderOption customizes LoadConfig.
type LoaderOption func(*loadOptions)

// WithFileSystem replaces the file system used to find and read files.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(o *loadOptions) { o.fs = fs }
}

// WithConfigFile reads YAML from path instead of searching for config.yml.
func WithConfigFile(path string) LoaderOption {
	return func(o *loadOptions) { o.sources.ConfigFile = path }
}

// WithEnvFile loads path instead of searching for a .env file.
func WithEnvFile(path string) LoaderOption {
	return func(o *loadOptions) { o.sources.EnvFile = path }
}

// WithEnvPrefix binds environment variables named PREFIX_KEY. Variables
// without the prefix are ignored.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(o *loadOptions) { o.envPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// WithDefaults registers default values keyed by dotted config path.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(o *loadOptions) { o.defaults = defaults }
}

// WithFlags binds command-line flags. keys maps a flag name to the dotted
// config key it overrides; unlisted flags bind under their own name. Only
// flags set on the command line take part.
func WithFlags(fs *pflag.FlagSet, keys map[string]string) LoaderOption {
	return func(o *loadOptions) {
		o.flags = fs
		o.flagKeys = keys
	}
}

// LoadConfig decodes configuration for serviceName into cfg. Sources are
// layered lowest first: defaults, the YAML file, prefixed environment
// variables (including those loaded from the .env file), then flags.
// A configured file that does not exist is skipped.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	o := loadOptions{fs: OSFileSystem{}}
	for _, opt := range opts {
		opt(&o)
	}
	src := Resolve(o.fs, serviceName, o.sources)

	v := viper.New()
	for key, value := range o.defaults {
		v.SetDefault(key, value)
	}

	if src.ConfigFile != "" && o.fs.Exists(src.ConfigFile) {
		v.SetConfigFile(src.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", src.ConfigFile, err)
		}
	}
	if src.EnvFile != "" && o.fs.Exists(src.EnvFile) {
		if err := o.fs.LoadEnv(src.EnvFile); err != nil {
			return fmt.Errorf("load env %s: %w", src.EnvFile, err)
		}
	}
	if o.envPrefix != "" {
		setFromEnv(v, o.envPrefix, os.Environ())
	}
	if o.flags != nil {
		o.flags.Visit(func(f *pflag.Flag) {
			key, ok := o.flagKeys[f.Name]
			if !ok {
				key = f.Name
			}
			v.Set(key, f.Value.String())
		})
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config for %s: %w", serviceName, err)
	}
	return nil
}
