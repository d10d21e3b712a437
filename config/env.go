package config

import (
	"strings"

	"github.com/spf13/viper"
)

// setFromEnv copies every PREFIX_* variable into v. An environment name
// cannot tell a nesting dot from an underscore inside a key, so the value
// is set under each reading of the name.
func setFromEnv(v *viper.Viper, prefix string, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix+"_")
		if !ok || rest == "" {
			continue
		}
		for _, key := range envKeys(rest) {
			v.Set(key, value)
		}
	}
}

// envKeys lists the config keys an environment name may address:
//
//	ENGINE_MAX_IN_FLIGHT -> engine_max_in_flight, engine.max.in.flight,
//	                        engine.max_in_flight, engine.max.in_flight, ...
func envKeys(name string) []string {
	lower := strings.ToLower(name)
	parts := strings.Split(lower, "_")
	keys := []string{lower}
	if len(parts) == 1 {
		return keys
	}

	seen := map[string]bool{lower: true}
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return keys
}
