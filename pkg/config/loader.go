package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/arthur-debert/droidsdk/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "DROIDSDK_"

// aliases maps the orchestrator's spellings to the canonical keys
var aliases = map[string]string{
	"dry-run":        "dry_run",
	"dryrun":         "dry_run",
	"install-dir":    "install_dir",
	"system-images":  "system_images",
	"other-packages": "other_packages",
}

// Load builds Options from the embedded defaults, the part file at path
// (skipped when empty), the environment and overrides, in that order.
// Overrides use dotted keys such as "installer.max_attempts".
func Load(path string, overrides map[string]interface{}) (*Options, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path).
				WithDetail("path", path)
		}
		partK := koanf.New(".")
		if err := partK.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(confmap.Provider(canonicalKeys(partK.All()), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge config file")
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(canonicalKeys(overrides), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var opts Options
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &opts,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				stringToFieldsHookFunc(),
				stringToLinesHookFunc(),
				boolishHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &opts, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// envKey turns DROIDSDK_INSTALLER__MAX_ATTEMPTS into installer.max_attempts
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// canonicalKeys rewrites aliased top level keys. Flattened (dotted) keys are
// passed through unchanged.
func canonicalKeys(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for key, val := range m {
		if canonical, ok := aliases[key]; ok {
			key = canonical
		}
		out[key] = val
	}
	return out
}

func stringToFieldsHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Fields{}) {
			return data, nil
		}
		return Fields(strings.Fields(data.(string))), nil
	}
}

func stringToLinesHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Lines{}) {
			return data, nil
		}
		var lines Lines
		for _, line := range strings.Split(data.(string), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		return lines, nil
	}
}

// boolishHookFunc accepts the orchestrator's flag spellings. An empty
// value means the option was given without a value and counts as set.
func boolishHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}
		return ParseBoolish(data.(string)), nil
	}
}

// ParseBoolish reports whether s spells a true flag
func ParseBoolish(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "yes", "on", "1":
		return true
	}
	return false
}
