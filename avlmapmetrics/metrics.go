// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package avlmapmetrics exposes Prometheus instrumentation for a named
// ordmap/hashmap instance: entry count, resize count, and Fastbin
// page/live-block occupancy.
package avlmapmetrics

import "github.com/prometheus/client_golang/prometheus"

// Collector publishes gauges/counters for a single named container
// instance. Register it with a prometheus.Registerer to expose it.
type Collector struct {
	entries    prometheus.Gauge
	resizes    prometheus.Counter
	pages      prometheus.Gauge
	liveBlocks prometheus.Gauge

	source      Source
	lastResizes uint64
}

// Source is implemented by the containers this package instruments.
// ordmap.Map and hashmap.Hashmap both satisfy it.
type Source interface {
	Len() int
	Resizes() uint64
	FastbinPages() int
	FastbinLiveBlocks() int64
}

// NewCollector builds a Collector named name for src. Call Register to
// attach it to a prometheus.Registerer.
func NewCollector(name string, src Source) *Collector {
	labels := prometheus.Labels{"container": name}
	return &Collector{
		source: src,
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "avlmap",
			Name:        "entries",
			Help:        "Number of entries currently stored in the container.",
			ConstLabels: labels,
		}),
		resizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "avlmap",
			Name:        "resizes_total",
			Help:        "Number of times the container's bucket array has been resized.",
			ConstLabels: labels,
		}),
		pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "avlmap",
			Name:        "fastbin_pages",
			Help:        "Number of Fastbin pages currently allocated.",
			ConstLabels: labels,
		}),
		liveBlocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "avlmap",
			Name:        "fastbin_live_blocks",
			Help:        "Number of Fastbin blocks currently in use.",
			ConstLabels: labels,
		}),
	}
}

// Collect refreshes every metric from the current state of the
// instrumented container. Call it before each scrape: Collector does not
// implement prometheus.Collector, so a registry never calls it.
func (c *Collector) Collect() {
	c.entries.Set(float64(c.source.Len()))
	if n := c.source.Resizes(); n > c.lastResizes {
		c.resizes.Add(float64(n - c.lastResizes))
		c.lastResizes = n
	}
	c.pages.Set(float64(c.source.FastbinPages()))
	c.liveBlocks.Set(float64(c.source.FastbinLiveBlocks()))
}

// Register attaches every metric this Collector owns to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, coll := range []prometheus.Collector{c.entries, c.resizes, c.pages, c.liveBlocks} {
		if err := reg.Register(coll); err != nil {
			return err
		}
	}
	return nil
}
