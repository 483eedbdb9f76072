package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.EndpointAddrHTTP != ":8080" {
		t.Errorf("unexpected default address: %q", cfg.EndpointAddrHTTP)
	}
	if cfg.TokenValidityDuration != time.Hour {
		t.Errorf("unexpected default token validity: %v", cfg.TokenValidityDuration)
	}
	if cfg.PasswordMinLength != 8 {
		t.Errorf("unexpected default min length: %d", cfg.PasswordMinLength)
	}
	if cfg.SecretKey != "" {
		t.Error("signing secret must have no default")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.SecretKey = testSecret
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.SecretKey = "" },
			wantSub: "required",
		},
		{
			name:    "short secret",
			mutate:  func(c *Config) { c.SecretKey = "tooshort" },
			wantSub: "32 bytes",
		},
		{
			name:    "non-positive token validity",
			mutate:  func(c *Config) { c.TokenValidityDuration = 0 },
			wantSub: "positive",
		},
		{
			name:    "zero min length",
			mutate:  func(c *Config) { c.PasswordMinLength = 0 },
			wantSub: "min length",
		},
		{
			name:    "empty special set",
			mutate:  func(c *Config) { c.PasswordSpecialChars = "" },
			wantSub: "special",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.PasswordMinLength = 12
	cfg.PasswordSpecialChars = "#!"

	p := cfg.Policy()
	if p.MinLength != 12 || p.SpecialChars != "#!" {
		t.Fatalf("policy mismatch: %+v", p)
	}
}
