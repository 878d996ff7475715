package app

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestRequireTokenFromEnvironment(t *testing.T) {
	t.Setenv("CANVAS_API_TOKEN", "")
	if err := requireToken(); err == nil {
		t.Fatalf("expected error without CANVAS_API_TOKEN")
	}

	t.Setenv("CANVAS_API_TOKEN", "test-secret")
	if err := requireToken(); err != nil {
		t.Fatalf("expected token accepted, got %v", err)
	}
	if got := viper.GetString("canvas.api_token"); got != "test-secret" {
		t.Fatalf("expected env token bound, got %q", got)
	}
}

func TestFlagsBoundToConfig(t *testing.T) {
	if got := viper.GetString("remores.email_domain"); got != "@kth.se" {
		t.Fatalf("expected flag default bound, got %q", got)
	}
	if got := viper.GetString("canvas.api_url"); got != "https://canvas.kth.se/api/v1" {
		t.Fatalf("expected flag default bound, got %q", got)
	}

	flags := rootCmd.PersistentFlags()
	if err := flags.Set("remores.email_domain", "@example.com"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	defer flags.Set("remores.email_domain", "@kth.se")

	if got := viper.GetString("remores.email_domain"); got != "@example.com" {
		t.Fatalf("expected flag override to reach config, got %q", got)
	}

	if err := flags.Set("http.timeout", "5s"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}
	defer flags.Set("http.timeout", "0")

	if got := viper.GetDuration("http.timeout"); got != 5*time.Second {
		t.Fatalf("expected 5s timeout bound, got %s", got)
	}
}
