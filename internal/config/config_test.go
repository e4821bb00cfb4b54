package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", c.RequestTimeout, DefaultRequestTimeout)
	}
	if c.MaxCitations != DefaultMaxCitations {
		t.Errorf("MaxCitations = %d, want %d", c.MaxCitations, DefaultMaxCitations)
	}
	if c.MaxGraphDepth != DefaultMaxGraphDepth {
		t.Errorf("MaxGraphDepth = %d, want %d", c.MaxGraphDepth, DefaultMaxGraphDepth)
	}
	if c.S2APIKey != "" {
		t.Errorf("S2APIKey = %q, want empty", c.S2APIKey)
	}
}

func TestConfig_WithDefaults_PreservesOverrides(t *testing.T) {
	c := Config{MaxGraphDepth: 5, S2APIKey: "secret"}.WithDefaults()

	if c.MaxGraphDepth != 5 {
		t.Errorf("MaxGraphDepth = %d, want 5", c.MaxGraphDepth)
	}
	if c.S2APIKey != "secret" {
		t.Errorf("S2APIKey = %q, want secret", c.S2APIKey)
	}
	if c.MaxCitations != DefaultMaxCitations {
		t.Errorf("MaxCitations = %d, want default %d", c.MaxCitations, DefaultMaxCitations)
	}
	if c.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want default %v", c.RequestTimeout, DefaultRequestTimeout)
	}
}

func TestConfig_WithDefaults_CustomTimeout(t *testing.T) {
	c := Config{RequestTimeout: 5 * time.Second}.WithDefaults()
	if c.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", c.RequestTimeout)
	}
}
