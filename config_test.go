package tunerkit

import "testing"

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TUNERKIT_API_KEY", "tk-secret")
	t.Setenv("TUNERKIT_BASE_URL", "https://tunerkit.example.com")
	t.Setenv("TUNERKIT_LEGACY_PATHS", "true")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.APIKey != "tk-secret" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "tk-secret")
	}
	if cfg.BaseURL != "https://tunerkit.example.com" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "https://tunerkit.example.com")
	}
	if !cfg.LegacyPaths {
		t.Error("LegacyPaths = false, want true")
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("TUNERKIT_API_KEY", "")
	t.Setenv("TUNERKIT_BASE_URL", "")
	t.Setenv("TUNERKIT_LEGACY_PATHS", "")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.APIKey != "" || cfg.BaseURL != "" || cfg.LegacyPaths {
		t.Errorf("cfg = %+v, want zero values", cfg)
	}
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv("TUNERKIT_API_KEY", "tk-env")
	t.Setenv("TUNERKIT_BASE_URL", "https://env.example.com")
	t.Setenv("TUNERKIT_LEGACY_PATHS", "")

	c, err := NewClientFromEnv(nil)
	if err != nil {
		t.Fatalf("NewClientFromEnv: %v", err)
	}
	if c.apiKey != "tk-env" {
		t.Errorf("apiKey = %q, want %q", c.apiKey, "tk-env")
	}
	if c.baseURL != "https://env.example.com" {
		t.Errorf("baseURL = %q, want %q", c.baseURL, "https://env.example.com")
	}

	// Explicit options take precedence over the environment.
	c, err = NewClientFromEnv(nil, WithBaseURL("https://override.example.com"))
	if err != nil {
		t.Fatalf("NewClientFromEnv: %v", err)
	}
	if c.baseURL != "https://override.example.com" {
		t.Errorf("baseURL = %q, want the option override", c.baseURL)
	}
}
