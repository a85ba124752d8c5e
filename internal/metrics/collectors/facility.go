// Package collectors samples facility state into the metrics gauges.
package collectors

import (
	"context"
	"time"

	"github.com/smazurov/complog/internal/logging"
	"github.com/smazurov/complog/internal/metrics"
)

// Source is the facility state a FacilityCollector samples.
type Source interface {
	Live() int64
	OpenFiles() int64
	HistoryLen() int
	Pinned(comp logging.Component) bool
}

// FacilityCollector periodically publishes facility gauges.
type FacilityCollector struct {
	logger   logging.Logger
	source   Source
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewFacilityCollector creates a collector sampling src every interval.
// A non-positive interval means five seconds.
func NewFacilityCollector(src Source, interval time.Duration) *FacilityCollector {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &FacilityCollector{
		logger:   logging.GetLogger("metrics"),
		source:   src,
		interval: interval,
	}
}

// Start begins sampling in the background.
func (c *FacilityCollector) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run()
	return nil
}

// Stop ends sampling and waits for the sampler to exit.
func (c *FacilityCollector) Stop() error {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	return nil
}

func (c *FacilityCollector) run() {
	defer close(c.done)
	c.logger.Debug("Starting facility metrics collection", "interval", c.interval)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Collect()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.Collect()
		}
	}
}

// Collect takes one sample.
func (c *FacilityCollector) Collect() {
	metrics.SetFacilityStats(c.sample())
}

func (c *FacilityCollector) sample() metrics.FacilityStats {
	pinned := 0
	for _, comp := range logging.Components() {
		if c.source.Pinned(comp) {
			pinned++
		}
	}
	return metrics.FacilityStats{
		LiveContexts:     c.source.Live(),
		OpenFiles:        c.source.OpenFiles(),
		HistoryRecords:   c.source.HistoryLen(),
		PinnedComponents: pinned,
	}
}
