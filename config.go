package tunerkit

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds client settings loadable from the environment. Full
// config-file and CLI loading is the integrating application's concern; this
// covers the variables the SDK itself defines.
type Config struct {
	APIKey      string
	BaseURL     string
	LegacyPaths bool
}

// ConfigFromEnv loads configuration from TUNERKIT_* environment variables:
//
//	TUNERKIT_API_KEY      -> APIKey
//	TUNERKIT_BASE_URL     -> BaseURL
//	TUNERKIT_LEGACY_PATHS -> LegacyPaths
func ConfigFromEnv() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("TUNERKIT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TUNERKIT_"))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}
	return Config{
		APIKey:      k.String("api_key"),
		BaseURL:     k.String("base_url"),
		LegacyPaths: k.Bool("legacy_paths"),
	}, nil
}
