package rivet

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type LoadOption func(*loadConfig)

type loadConfig struct {
	envFile string
}

// WithEnvFile loads a dotenv file into the process environment before
// the config files are read, so its variables participate in
// APPNAME_SECTION_KEY overrides.
func WithEnvFile(path string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.envFile = path
	}
}

// Load reads and merges the given config files (TOML, YAML, or JSON by
// extension) into a Store. Top-level tables become sections; nested
// keys are flattened with dots. Every discovered key can be overridden
// through an APPNAME_SECTION_KEY environment variable.
func Load(appName string, files []string, opts ...LoadOption) (*Store, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.envFile != "" {
		if err := godotenv.Load(cfg.envFile); err != nil {
			return nil, errConfigLoadFailed(cfg.envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, file := range files {
		fv := viper.New()
		fv.SetConfigFile(file)
		if err := fv.ReadInConfig(); err != nil {
			return nil, errConfigLoadFailed(file, err)
		}
		if err := v.MergeConfigMap(fv.AllSettings()); err != nil {
			return nil, errConfigLoadFailed(file, err)
		}
	}

	values := make(map[string]map[string]any)
	for section, raw := range v.AllSettings() {
		table, ok := raw.(map[string]any)
		if !ok {
			// Bare top-level scalars live in the unnamed section.
			put(values, "", section, bindAndGet(v, section))
			continue
		}
		for key := range flatten(table, "") {
			put(values, section, key, bindAndGet(v, section+"."+key))
		}
	}

	store := NewStore()
	store.SetValues(values)
	return store, nil
}

// bindAndGet reads the key back through viper so an environment
// variable bound under the app prefix wins over the file value.
func bindAndGet(v *viper.Viper, nsKey string) any {
	_ = v.BindEnv(nsKey)
	return v.Get(nsKey)
}

func put(values map[string]map[string]any, section, key string, value any) {
	entries := values[section]
	if entries == nil {
		entries = make(map[string]any)
		values[section] = entries
	}
	entries[key] = value
}

// flatten walks a nested settings table and returns leaf values keyed
// by their dotted path.
func flatten(table map[string]any, prefix string) map[string]any {
	out := make(map[string]any)
	for key, value := range table {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for nestedKey, nestedValue := range flatten(nested, path) {
				out[nestedKey] = nestedValue
			}
			continue
		}
		out[path] = value
	}
	return out
}
