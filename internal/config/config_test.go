package config

import "testing"

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()
	if cfg.AgentTTLMins != 15 {
		t.Errorf("expected default AgentTTLMins=15, got %d", cfg.AgentTTLMins)
	}
	if cfg.KdfMemoryKiB != 0 || cfg.KdfTime != 0 {
		t.Error("expected zero-override defaults for KDF cost fields")
	}
}

func TestValidateRejectsOutOfRangeKdfMemory(t *testing.T) {
	result := validate(Config{KdfMemoryKiB: 1024})
	if result.Valid {
		t.Error("expected validation to fail for too-small kdf_mem_kib")
	}
}

func TestValidateRejectsOutOfRangeKdfTime(t *testing.T) {
	result := validate(Config{KdfTime: 99})
	if result.Valid {
		t.Error("expected validation to fail for too-large kdf_time")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	result := validate(GetDefaults())
	if !result.Valid {
		t.Errorf("expected defaults to validate cleanly, got errors: %+v", result.Errors)
	}
}

func TestValidateRejectsNegativeAgentTTL(t *testing.T) {
	result := validate(Config{AgentTTLMins: -1})
	if result.Valid {
		t.Error("expected validation to fail for a negative agent TTL")
	}
}

func TestLoadReturnsValidDefaultsWithoutAConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, result := Load()
	if !result.Valid {
		t.Errorf("expected Load with no config file to validate cleanly, got: %+v", result.Errors)
	}
	if cfg.AgentTTLMins != 15 {
		t.Errorf("expected default AgentTTLMins=15, got %d", cfg.AgentTTLMins)
	}
}
