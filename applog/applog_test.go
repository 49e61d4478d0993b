package applog

import "testing"

func TestSetLevelRejectsUnknownLevel(t *testing.T) {
	if err := SetLevel("not-a-level"); err == nil {
		t.Fatalf("SetLevel(garbage) error = nil, want error")
	}
}

func TestSetLevelAcceptsKnownLevel(t *testing.T) {
	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug) error = %v", err)
	}
	if Logger.Level.String() != "debug" {
		t.Fatalf("Logger.Level = %v, want debug", Logger.Level)
	}
}
