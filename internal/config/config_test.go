// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "CORPSITE_ASSET_ORIGIN", "https://cdn.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/corpsite.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/corpsite.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.UploadPrefix != "/uploads/" {
		t.Errorf("UploadPrefix = %q, want %q", cfg.UploadPrefix, "/uploads/")
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want %q", cfg.DefaultLanguage, "en")
	}
	if strings.Join(cfg.Languages, ",") != "en,tr,de" {
		t.Errorf("Languages = %v, want [en tr de]", cfg.Languages)
	}
	if cfg.CacheDuration() != time.Hour {
		t.Errorf("CacheDuration() = %v, want 1h", cfg.CacheDuration())
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false")
	}
	if cfg.PayloadMigrationSchedule != "@hourly" {
		t.Errorf("PayloadMigrationSchedule = %q, want @hourly", cfg.PayloadMigrationSchedule)
	}
	if cfg.APIRateLimit != 10 || cfg.APIRateBurst != 20 {
		t.Errorf("rate limit = %v/%d, want 10/20", cfg.APIRateLimit, cfg.APIRateBurst)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "CORPSITE_ASSET_ORIGIN", "http://assets.local:9000")
	setEnv(t, "CORPSITE_DB_PATH", "/custom/path.db")
	setEnv(t, "CORPSITE_SERVER_HOST", "0.0.0.0")
	setEnv(t, "CORPSITE_SERVER_PORT", "3000")
	setEnv(t, "CORPSITE_ENV", "production")
	setEnv(t, "CORPSITE_LOG_LEVEL", "debug")
	setEnv(t, "CORPSITE_UPLOAD_PREFIX", "/media/")
	setEnv(t, "CORPSITE_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "CORPSITE_DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "0.0.0.0:3000")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.UploadPrefix != "/media/" {
		t.Errorf("UploadPrefix = %q", cfg.UploadPrefix)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing asset origin", map[string]string{}, "CORPSITE_ASSET_ORIGIN"},
		{"relative asset origin", map[string]string{"CORPSITE_ASSET_ORIGIN": "/static"}, "CORPSITE_ASSET_ORIGIN"},
		{"ftp asset origin", map[string]string{"CORPSITE_ASSET_ORIGIN": "ftp://files.example.com"}, "CORPSITE_ASSET_ORIGIN"},
		{"upload prefix without slash", map[string]string{
			"CORPSITE_ASSET_ORIGIN":  "https://cdn.example.com",
			"CORPSITE_UPLOAD_PREFIX": "uploads",
		}, "CORPSITE_UPLOAD_PREFIX"},
		{"unknown log level", map[string]string{
			"CORPSITE_ASSET_ORIGIN": "https://cdn.example.com",
			"CORPSITE_LOG_LEVEL":    "verbose",
		}, "CORPSITE_LOG_LEVEL"},
		{"bad port", map[string]string{
			"CORPSITE_ASSET_ORIGIN": "https://cdn.example.com",
			"CORPSITE_SERVER_PORT":  "http",
		}, "ServerPort"},
		{"zero rate limit", map[string]string{
			"CORPSITE_ASSET_ORIGIN":   "https://cdn.example.com",
			"CORPSITE_API_RATE_LIMIT": "0",
		}, "CORPSITE_API_RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				setEnv(t, k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}
