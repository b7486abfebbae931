// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package avlmapconfig

import "testing"

func TestDefaultValues(t *testing.T) {
	d := Default()
	if d.FastbinPageInitial != 32 {
		t.Fatalf("FastbinPageInitial = %d, want 32", d.FastbinPageInitial)
	}
	if d.FastbinPageCap != 4096 {
		t.Fatalf("FastbinPageCap = %d, want 4096", d.FastbinPageCap)
	}
	if d.HashmapInitialBuckets != 8 {
		t.Fatalf("HashmapInitialBuckets = %d, want 8", d.HashmapInitialBuckets)
	}
	if d.MaxLoadNum != 1 || d.MaxLoadDen != 1 {
		t.Fatalf("MaxLoad = %d/%d, want 1/1", d.MaxLoadNum, d.MaxLoadDen)
	}
}

func TestParseOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := Parse([]byte("hashmap_initial_buckets: 64\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.HashmapInitialBuckets != 64 {
		t.Fatalf("HashmapInitialBuckets = %d, want 64", cfg.HashmapInitialBuckets)
	}
	if cfg.FastbinPageInitial != 32 {
		t.Fatalf("unset field FastbinPageInitial = %d, want default 32", cfg.FastbinPageInitial)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("not: [valid: yaml")); err == nil {
		t.Fatalf("expected an error parsing malformed YAML")
	}
}

func TestNormalizedFillsNonPositiveFields(t *testing.T) {
	cfg := Normalized(Config{HashmapInitialBuckets: 128})
	if cfg.HashmapInitialBuckets != 128 {
		t.Fatalf("HashmapInitialBuckets = %d, want 128", cfg.HashmapInitialBuckets)
	}
	if cfg.FastbinPageInitial != Default().FastbinPageInitial {
		t.Fatalf("FastbinPageInitial = %d, want default", cfg.FastbinPageInitial)
	}
	if cfg.MaxLoadNum != 1 || cfg.MaxLoadDen != 1 {
		t.Fatalf("MaxLoad = %d/%d, want defaults 1/1", cfg.MaxLoadNum, cfg.MaxLoadDen)
	}
}
