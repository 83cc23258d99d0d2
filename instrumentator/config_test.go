package instrumentator

import "testing"

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if !cfg.Enabled {
		t.Error("Enabled = false, want default true")
	}
	if cfg.MetricsPath != "/metrics" {
		t.Errorf("MetricsPath = %q, want /metrics", cfg.MetricsPath)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ENABLE_METRICS", "false")
	t.Setenv("METRICS_PATH", "/internal/metrics")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
	if cfg.MetricsPath != "/internal/metrics" {
		t.Errorf("MetricsPath = %q", cfg.MetricsPath)
	}
}
