package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kndndrj/sparqlbench/adapters"
	"github.com/kndndrj/sparqlbench/core"
)

const (
	envPrefix = "SPARQLBENCH"
	// libraryKey holds per-library tables in the config file
	libraryKey = "library"
)

// globals is state shared by all commands after flags are parsed.
type globals struct {
	v        *viper.Viper
	logLevel string
	stderr   io.Writer
	logger   *slog.Logger
}

func (g *globals) setupLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", g.logLevel, err)
	}

	g.logger = slog.New(slog.NewTextHandler(g.stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.logger)

	return nil
}

// setAllConfig takes a FlagSet to be the definition of all configuration
// options, as well as their defaults. It then reads from the command line,
// the environment, and a config file (if specified), and applies the
// configuration in that priority order.
//
// Environment variables are capitalized flag names with dashes replaced by
// underscores, prefixed with SPARQLBENCH_. Apart from flags, the config file
// may only hold [library.<name>] tables.
func setAllConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	err := v.BindPFlags(flags)
	if err != nil {
		return fmt.Errorf("v.BindPFlags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	validTags := make(map[string]bool)
	flags.VisitAll(func(f *pflag.Flag) {
		validTags[f.Name] = true
	})

	if c := v.GetString("config"); c != "" {
		v.SetConfigFile(c)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading configuration file '%s': %w", c, err)
		}

		for _, key := range v.AllKeys() {
			if strings.HasPrefix(key, libraryKey+".") {
				continue
			}
			if !validTags[key] {
				return fmt.Errorf("invalid option in configuration file: %v", key)
			}
		}
	}

	var flagErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if flagErr != nil || f.Changed {
			// flags have the highest priority
			return
		}

		var value string
		if f.Value.Type() == "stringSlice" {
			// v.GetString is empty for slices coming from a config file
			value = strings.Join(v.GetStringSlice(f.Name), ",")
		} else {
			value = v.GetString(f.Name)
		}
		flagErr = f.Value.Set(value)
	})

	return flagErr
}

// libraryConfig overrides the defaults of one library. Unset fields keep the
// library default.
type libraryConfig struct {
	Endpoint       *string        `mapstructure:"endpoint"`
	ConnectTimeout *time.Duration `mapstructure:"connect-timeout"`
	ReadTimeout    *time.Duration `mapstructure:"read-timeout"`
	TotalTimeout   *time.Duration `mapstructure:"total-timeout"`
	PoolSize       *int           `mapstructure:"pool-size"`
	Retries        *int           `mapstructure:"retries"`
}

func (lc libraryConfig) apply(p *core.ClientParams) {
	if lc.Endpoint != nil {
		p.Endpoint = *lc.Endpoint
	}
	if lc.ConnectTimeout != nil {
		p.ConnectTimeout = *lc.ConnectTimeout
	}
	if lc.ReadTimeout != nil {
		p.ReadTimeout = *lc.ReadTimeout
	}
	if lc.TotalTimeout != nil {
		p.TotalTimeout = *lc.TotalTimeout
	}
	if lc.PoolSize != nil {
		p.PoolSize = *lc.PoolSize
	}
	if lc.Retries != nil {
		p.Retries = *lc.Retries
	}
}

// libraryParams resolves the client parameters of every requested library:
// library defaults, then the global endpoint and pool size, then the
// library's own table from the config file. Aliases are accepted anywhere.
func libraryParams(v *viper.Viper, names []string, endpoint string, poolSize int) ([]*core.ClientParams, error) {
	overrides := make(map[string]libraryConfig)
	if v.IsSet(libraryKey) {
		raw := make(map[string]libraryConfig)
		if err := v.UnmarshalKey(libraryKey, &raw); err != nil {
			return nil, fmt.Errorf("v.UnmarshalKey: %w", err)
		}
		for alias, lc := range raw {
			name, err := adapters.Canonical(alias)
			if err != nil {
				return nil, fmt.Errorf("[%s.%s]: %w", libraryKey, alias, err)
			}
			overrides[name] = lc
		}
	}

	seen := make(map[string]bool)
	var params []*core.ClientParams
	for _, n := range names {
		name, err := adapters.Canonical(strings.TrimSpace(n))
		if err != nil {
			return nil, fmt.Errorf("adapters.Canonical: %w", err)
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		p := adapters.DefaultParams(name)
		if endpoint != "" {
			p.Endpoint = endpoint
		}
		if poolSize > 0 {
			p.PoolSize = poolSize
		}
		overrides[name].apply(p)

		params = append(params, p)
	}

	return params, nil
}
