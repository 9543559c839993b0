package prefabs

import (
	"testing"
	"time"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	base := time.Now()

	if !d.allow("player.yaml", base) {
		t.Fatal("first event must pass")
	}
	if d.allow("player.yaml", base.Add(30*time.Millisecond)) {
		t.Fatal("burst event inside the window must be swallowed")
	}
	if !d.allow("player.yaml", base.Add(150*time.Millisecond)) {
		t.Fatal("event after the window must pass")
	}
}

func TestDebouncerTracksPathsIndependently(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	base := time.Now()

	if !d.allow("player.yaml", base) {
		t.Fatal("first player event must pass")
	}
	if !d.allow("abilities.yaml", base.Add(10*time.Millisecond)) {
		t.Fatal("a different path is not part of the burst")
	}
}

func TestIsSpecFile(t *testing.T) {
	for path, want := range map[string]bool{
		"player.yaml":   true,
		"player.YML":    true,
		"notes.txt":     false,
		"player.yaml~":  false,
		"levels/a.json": false,
	} {
		if got := isSpecFile(path); got != want {
			t.Fatalf("isSpecFile(%q) = %v, want %v", path, got, want)
		}
	}
}
