package config

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/flagx"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by the server,
// e.g. CREDVAULT_DATABASE_DSN.
const EnvPrefix = "CREDVAULT_"

// parseKoanf overlays the optional config file and the environment onto cfg.
// Keys absent from both keep their current values. The YAML parser also
// accepts JSON files.
func parseKoanf(cfg *Config, args []string, environ func() []string) error {
	k := koanf.New(".")

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, v string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), v
		},
		EnvironFunc: environ,
	}), nil); err != nil {
		return fmt.Errorf("load env variables: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	return nil
}
