package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/monitor"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/state"
)

const defaultReportInterval = 2 * time.Second

// Source is the part of the monitor client the headless reporter reads.
type Source interface {
	Target() string
	Snapshot() state.Snapshot
	Connected() bool
	State() monitor.State
	LastError() error
}

// RunReporter logs a status summary every interval until ctx is cancelled.
// It always returns ctx.Err().
func RunReporter(ctx context.Context, src Source, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = defaultReportInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			report(src, logger)
		}
	}
}

func report(src Source, logger *slog.Logger) {
	if src.Target() == "" {
		logger.Info("waiting for printer address")
		return
	}
	if !src.Connected() {
		attrs := []any{"printer", src.Target(), "state", src.State().String()}
		if err := src.LastError(); err != nil {
			attrs = append(attrs, "error", err.Error())
		}
		logger.Warn("printer offline", attrs...)
		return
	}
	snap := src.Snapshot()
	if !snap.HasData() {
		logger.Info("connected, waiting for telemetry", "printer", src.Target())
		return
	}
	logger.Info("printer status", summarize(src.Target(), snap)...)
}

func summarize(host string, snap state.Snapshot) []any {
	return []any{
		"printer", host,
		"status", snap.PrintStatus.String(),
		"progress", snap.Progress,
		"nozzle", snap.NozzleTemp,
		"nozzle_target", snap.TargetNozzleTemp,
		"bed", snap.BedTemp,
		"bed_target", snap.TargetBedTemp,
		"enclosure", snap.EnclosureTemp,
		"layer", snap.CurrentLayer,
		"layers", snap.TotalLayers,
		"speed", snap.PrintSpeedLabel(),
		"elapsed", snap.ElapsedTime,
		"remaining", snap.RemainingTime,
	}
}
