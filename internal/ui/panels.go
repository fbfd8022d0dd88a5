package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/logtail"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/state"
)

// renderPanels lays out the telemetry panels: two columns on wide
// terminals, a single stack otherwise. Events span the full width.
func (m Model) renderPanels() string {
	snap := m.status.snapshot

	if m.width < LayoutCompactWidth {
		width := max(LayoutMinPanelWidth, m.width)
		return lipgloss.JoinVertical(lipgloss.Left,
			m.temperaturePanel(snap, width),
			m.fanPanel(snap, width),
			m.printPanel(snap, width),
			m.videoPanel(width),
			m.eventsPanel(width),
		)
	}

	col := m.width / 2
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.temperaturePanel(snap, col),
		m.fanPanel(snap, col),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.printPanel(snap, m.width-col),
		m.videoPanel(m.width-col),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.eventsPanel(m.width),
	)
}

// panel draws a bordered box of the given outer width.
func (m Model) panel(title string, width int, lines ...string) string {
	styles := m.theme.Styles()
	body := styles.PanelTitle.Render(title) + "\n" + strings.Join(lines, "\n")
	// Width excludes the border, which adds two columns.
	return styles.Panel.Width(max(1, width-2)).Render(body)
}

func (m Model) row(label, value string) string {
	styles := m.theme.Styles()
	return styles.MutedText.Render(padRight(label, 11)) + styles.Text.Render(value)
}

func (m Model) temperaturePanel(snap state.Snapshot, width int) string {
	if !snap.HasData() {
		return m.panel("Temperatures", width, m.waitingLine())
	}
	return m.panel("Temperatures", width,
		m.row("Nozzle", formatTemp(snap.NozzleTemp, snap.TargetNozzleTemp)),
		m.row("Bed", formatTemp(snap.BedTemp, snap.TargetBedTemp)),
		m.row("Enclosure", formatTemp(snap.EnclosureTemp, 0)),
		m.row("Z offset", formatZOffset(snap.ZOffset)),
	)
}

func (m Model) fanPanel(snap state.Snapshot, width int) string {
	if !snap.HasData() {
		return m.panel("Fans", width, m.waitingLine())
	}
	barWidth := gaugeWidth(width)
	return m.panel("Fans", width,
		m.row("Model", m.gauge(float64(snap.ModelFanSpeed)/100, barWidth, m.theme.Info)+fmt.Sprintf(" %3d%%", snap.ModelFanSpeed)),
		m.row("Auxiliary", m.gauge(float64(snap.AuxFanSpeed)/100, barWidth, m.theme.Info)+fmt.Sprintf(" %3d%%", snap.AuxFanSpeed)),
		m.row("Chamber", m.gauge(float64(snap.BoxFanSpeed)/100, barWidth, m.theme.Info)+fmt.Sprintf(" %3d%%", snap.BoxFanSpeed)),
	)
}

func (m Model) printPanel(snap state.Snapshot, width int) string {
	if !snap.HasData() {
		return m.panel("Print", width, m.waitingLine())
	}
	styles := m.theme.Styles()
	badge := styles.PhaseBadge(snap.PrintStatus.Phase.String()).Render(snap.PrintStatus.String())

	return m.panel("Print", width,
		m.row("Status", badge),
		m.row("Progress", m.gauge(snap.Progress/100, gaugeWidth(width), m.theme.Accent)+fmt.Sprintf(" %5.1f%%", snap.Progress)),
		m.row("Layer", formatLayers(snap.CurrentLayer, snap.TotalLayers)),
		m.row("Speed", snap.PrintSpeedLabel()),
		m.row("Elapsed", snap.ElapsedTime),
		m.row("Remaining", snap.RemainingTime),
		m.row("Total", snap.TotalTime),
	)
}

func (m Model) videoPanel(width int) string {
	styles := m.theme.Styles()
	if m.status.videoURL == "" {
		return m.panel("Camera", width, styles.FaintText.Render("available while connected"))
	}
	return m.panel("Camera", width, styles.InfoText.Render(m.status.videoURL))
}

func (m Model) eventsPanel(width int) string {
	styles := m.theme.Styles()
	if m.logPath == "" {
		return m.panel("Events", width, styles.FaintText.Render("logging to stderr"))
	}
	if len(m.events) == 0 {
		return m.panel("Events", width, styles.FaintText.Render("no events yet"))
	}
	lines := make([]string, 0, len(m.events))
	for _, e := range m.events {
		lines = append(lines, m.eventLine(e, width-4))
	}
	return m.panel("Events", width, lines...)
}

func (m Model) eventLine(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	levelStyle := styles.InfoText
	switch e.Level {
	case "WARN":
		levelStyle = styles.WarningText
	case "ERROR":
		levelStyle = styles.DangerText
	case "DEBUG":
		levelStyle = styles.FaintText
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
		b.WriteString(" ")
	}
	if e.Level != "" {
		b.WriteString(levelStyle.Render(padRight(e.Level, 5)))
		b.WriteString(" ")
	}
	detail := e.Message
	for _, key := range []string{"host", "error", "delay"} {
		if v, ok := e.Attr(key); ok {
			detail += " " + key + "=" + v
		}
	}
	b.WriteString(styles.Text.Render(truncate(detail, max(10, width-16))))
	return b.String()
}

func (m Model) waitingLine() string {
	styles := m.theme.Styles()
	if m.status.target == "" {
		return styles.FaintText.Render("no printer selected")
	}
	return styles.FaintText.Render("waiting for telemetry…")
}

// gauge renders a static bar for a 0..1 ratio.
func (m Model) gauge(ratio float64, width int, color string) string {
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = m.theme.SurfaceAlt
	return bar.ViewAs(clampRatio(ratio))
}

func gaugeWidth(panelWidth int) int {
	// label column, percentage and panel chrome
	return max(6, min(40, panelWidth-11-8-4))
}
