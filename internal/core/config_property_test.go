package core

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// For any valid set of values written to .todoconfig, LoadGlobalConfig
// returns exactly those values.
func TestProperty_ConfigRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir := t.TempDir()

		file := rapid.StringMatching(`[a-z]{1,12}\.yaml`).Draw(rt, "file")
		origin := rapid.StringMatching(`o-[a-z0-9-]{0,15}`).Draw(rt, "origin")
		key := rapid.StringMatching(`k_[a-z0-9_]{0,15}`).Draw(rt, "key")
		enabled := rapid.Bool().Draw(rt, "enabled")
		events := rapid.StringMatching(`[a-z]{1,12}\.jsonl`).Draw(rt, "events")
		days := rapid.IntRange(0, 60).Draw(rt, "days")

		content := fmt.Sprintf("storage:\n  file: %s\n  origin: %s\n  key: %s\nevents:\n  enabled: %t\n  file: %s\ndue_soon_days: %d\n",
			file, origin, key, enabled, events, days)
		writeFile(t, dir, ".todoconfig", content)

		cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
		if err != nil {
			rt.Fatalf("LoadGlobalConfig: %v\n%s", err, content)
		}
		if cfg.Storage.File != file || cfg.Storage.Origin != origin || cfg.Storage.Key != key {
			rt.Errorf("storage = %+v", cfg.Storage)
		}
		if cfg.Events.Enabled != enabled || cfg.Events.File != events {
			rt.Errorf("events = %+v", cfg.Events)
		}
		if cfg.DueSoonDays != days {
			rt.Errorf("DueSoonDays = %d, want %d", cfg.DueSoonDays, days)
		}
	})
}

// Any negative due-soon window is rejected.
func TestProperty_NegativeDueSoonRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir := t.TempDir()
		days := rapid.IntRange(-1000, -1).Draw(rt, "days")
		writeFile(t, dir, ".todoconfig", fmt.Sprintf("due_soon_days: %d\n", days))

		if _, err := NewConfigurationManager(dir).LoadGlobalConfig(); err == nil {
			rt.Fatalf("expected error for due_soon_days %d", days)
		}
	})
}
