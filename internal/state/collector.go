package state

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "carbon"

// Collector exports the current snapshot as Prometheus gauges. Values are read
// at scrape time, so nothing is recorded between scrapes.
type Collector struct {
	store *Store

	temperature   *prometheus.Desc
	setpoint      *prometheus.Desc
	zOffset       *prometheus.Desc
	fanSpeed      *prometheus.Desc
	progress      *prometheus.Desc
	statusCode    *prometheus.Desc
	layer         *prometheus.Desc
	totalLayers   *prometheus.Desc
	printSpeed    *prometheus.Desc
	elapsed       *prometheus.Desc
	remaining     *prometheus.Desc
	framesApplied *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a collector over store.
func NewCollector(store *Store) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "printer", name), help, labels, nil)
	}
	return &Collector{
		store:         store,
		temperature:   desc("temperature_celsius", "Current temperature reading.", "sensor"),
		setpoint:      desc("target_temperature_celsius", "Heater setpoint.", "sensor"),
		zOffset:       desc("z_offset_millimeters", "Configured Z offset."),
		fanSpeed:      desc("fan_speed_percent", "Fan duty cycle.", "fan"),
		progress:      desc("progress_percent", "Print job progress."),
		statusCode:    desc("status_code", "Raw print status code.", "phase"),
		layer:         desc("current_layer", "Layer currently printing."),
		totalLayers:   desc("total_layers", "Layer count of the active job."),
		printSpeed:    desc("speed_percent", "Print speed override."),
		elapsed:       desc("elapsed_seconds", "Elapsed print time."),
		remaining:     desc("remaining_seconds", "Estimated remaining print time."),
		framesApplied: desc("frames_applied_total", "Telemetry frames merged into the snapshot."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		c.temperature, c.setpoint, c.zOffset, c.fanSpeed, c.progress, c.statusCode,
		c.layer, c.totalLayers, c.printSpeed, c.elapsed, c.remaining, c.framesApplied,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.store.Snapshot()
	if !snap.HasData() {
		return
	}
	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, labels...)
	}

	gauge(c.temperature, snap.NozzleTemp, "nozzle")
	gauge(c.temperature, snap.BedTemp, "bed")
	gauge(c.temperature, snap.EnclosureTemp, "enclosure")
	gauge(c.setpoint, snap.TargetNozzleTemp, "nozzle")
	gauge(c.setpoint, snap.TargetBedTemp, "bed")
	gauge(c.zOffset, snap.ZOffset)
	gauge(c.fanSpeed, float64(snap.ModelFanSpeed), "model")
	gauge(c.fanSpeed, float64(snap.AuxFanSpeed), "auxiliary")
	gauge(c.fanSpeed, float64(snap.BoxFanSpeed), "box")
	gauge(c.progress, snap.Progress)
	gauge(c.statusCode, float64(snap.PrintStatus.Code), snap.PrintStatus.Phase.String())
	gauge(c.layer, float64(snap.CurrentLayer))
	gauge(c.totalLayers, float64(snap.TotalLayers))
	gauge(c.printSpeed, float64(snap.PrintSpeed))
	gauge(c.elapsed, float64(snap.ElapsedTimeRaw))
	gauge(c.remaining, float64(snap.RemainingTimeRaw))
	ch <- prometheus.MustNewConstMetric(c.framesApplied, prometheus.CounterValue, float64(snap.Frames))
}
