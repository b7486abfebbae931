// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package avlmapconfig holds the tunables recognized by ordmap and
// hashmap, loadable from YAML with gopkg.in/yaml.v2.
package avlmapconfig

import "gopkg.in/yaml.v2"

// Config holds the configuration options for a Map or Hashmap. The zero
// value is not valid configuration; use Default() or Parse to obtain one
// with sane defaults filled in.
type Config struct {
	// FastbinPageInitial is the initial block count of a Fastbin's
	// first page.
	FastbinPageInitial int `yaml:"fastbin_page_initial"`
	// FastbinPageCap is the maximum block count of any later Fastbin
	// page.
	FastbinPageCap int `yaml:"fastbin_page_cap"`
	// HashmapInitialBuckets is the power-of-two bucket count a
	// HashMap allocates on its first insertion.
	HashmapInitialBuckets int `yaml:"hashmap_initial_buckets"`
	// MaxLoadNum and MaxLoadDen together define the load factor that
	// triggers a HashMap resize: grow when count*MaxLoadDen >
	// buckets*MaxLoadNum.
	MaxLoadNum int `yaml:"hashmap_max_load_num"`
	MaxLoadDen int `yaml:"hashmap_max_load_den"`
}

// Default returns the recommended default configuration.
func Default() Config {
	return Config{
		FastbinPageInitial:    32,
		FastbinPageCap:        4096,
		HashmapInitialBuckets: 8,
		MaxLoadNum:            1,
		MaxLoadDen:            1,
	}
}

// Parse reads a Config from YAML, starting from Default() so any field
// the document omits keeps its default value.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalized returns a copy of cfg with any non-positive field reset to
// its default, so a caller-supplied zero-value Config still behaves
// reasonably.
func (cfg Config) normalized() Config {
	d := Default()
	if cfg.FastbinPageInitial <= 0 {
		cfg.FastbinPageInitial = d.FastbinPageInitial
	}
	if cfg.FastbinPageCap <= 0 {
		cfg.FastbinPageCap = d.FastbinPageCap
	}
	if cfg.HashmapInitialBuckets <= 0 {
		cfg.HashmapInitialBuckets = d.HashmapInitialBuckets
	}
	if cfg.MaxLoadNum <= 0 {
		cfg.MaxLoadNum = d.MaxLoadNum
	}
	if cfg.MaxLoadDen <= 0 {
		cfg.MaxLoadDen = d.MaxLoadDen
	}
	return cfg
}

// Normalized is the exported form of normalized, used by ordmap/hashmap
// when accepting a caller-supplied Config through a functional option.
func Normalized(cfg Config) Config {
	return cfg.normalized()
}
