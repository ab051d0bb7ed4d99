package app

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewConfigFromArgsDefaults(t *testing.T) {
	c, err := NewConfigFromArgs(nil)
	if err != nil {
		t.Fatalf("NewConfigFromArgs error: %v", err)
	}
	if !reflect.DeepEqual(c, NewConfig()) {
		t.Fatalf("config=%+v, want defaults", c)
	}
}

func TestNewConfigFromArgsFlags(t *testing.T) {
	c, err := NewConfigFromArgs([]string{
		"-event", "LVT151012", "-detectors", "L1, H1", "-shift", "300",
		"-window", "Blackman", "-plot=false", "-bandpass=false", "-template=false", "-workers", "1",
	})
	if err != nil {
		t.Fatalf("NewConfigFromArgs error: %v", err)
	}

	if c.Event != "LVT151012" || c.ShiftHz != 300 || c.Window != "Blackman" || c.Plot || c.Bandpass || c.Template || c.Workers != 1 {
		t.Fatalf("config=%+v", c)
	}
	if !reflect.DeepEqual(c.Detectors, []string{"L1", "H1"}) {
		t.Fatalf("detectors=%v", c.Detectors)
	}
}

func TestNewConfigFromArgsFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gwsonify.yaml")
	yml := "event: GW151226\nshiftHz: 250\nsoundSeconds: 1.5\ndetectors: [H1]\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := NewConfigFromArgs([]string{"-config", path, "-shift", "350"})
	if err != nil {
		t.Fatalf("NewConfigFromArgs error: %v", err)
	}

	if c.Event != "GW151226" || c.SoundSeconds != 1.5 || !reflect.DeepEqual(c.Detectors, []string{"H1"}) {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.ShiftHz != 350 {
		t.Fatalf("shift=%v, flag must win over file", c.ShiftHz)
	}
	if c.SegmentSeconds != 4 {
		t.Fatalf("segment=%v, unset keys keep defaults", c.SegmentSeconds)
	}
}

func TestLoadFromReaderRejectsUnknownKeys(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("shift_hz: 100\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}

	c, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty document error: %v", err)
	}
	if c.Event != "GW150914" {
		t.Fatalf("event=%q", c.Event)
	}
}

func TestValidate(t *testing.T) {
	c := NewConfig()
	c.Catalog = ""
	c.Detectors = []string{"V1"}
	c.Window = "kaiser"
	c.Workers = 0
	c.SegmentSeconds = -1

	err := Validate(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"catalog", `"V1"`, "kaiser", "workers", "segment"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}

	if err := Validate(NewConfig()); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestNewConfigFromArgsInvalid(t *testing.T) {
	if _, err := NewConfigFromArgs([]string{"-workers", "0"}); err == nil {
		t.Fatal("expected error for zero workers")
	}
	if _, err := NewConfigFromArgs([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
