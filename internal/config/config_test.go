package config

import "testing"

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load without config file: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config without error")
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want default 3000", cfg.Port)
	}
	if cfg.StaticPath != "./public" {
		t.Errorf("StaticPath = %q, want ./public", cfg.StaticPath)
	}
	if cfg.SendBuffer <= 0 || cfg.ReadLimit <= 0 || cfg.PingPeriod <= 0 {
		t.Errorf("transport defaults not set: %+v", cfg)
	}
}

func TestLoadPortEnvOverride(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")
	t.Setenv("PORT", "4567")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 4567 {
		t.Errorf("Port = %d, want PORT env override 4567", cfg.Port)
	}
}
