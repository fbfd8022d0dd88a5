package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/monitor"
)

// renderHeader renders the status bar: logo, connection badge, host, print
// phase and data age.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	st := m.status

	parts := []string{styles.Logo.Render("carbon")}

	label, tone := connectionLabel(st.connected, st.state, st.target)
	parts = append(parts, m.toneStyle(tone).Render("● "+label))

	if st.target != "" {
		parts = append(parts, styles.MutedText.Render("Printer:")+" "+styles.Text.Render(st.target))
	} else {
		parts = append(parts, styles.WarningText.Render("no printer set, press / to enter one"))
	}

	if st.snapshot.HasData() {
		phase := st.snapshot.PrintStatus.Phase.String()
		parts = append(parts, styles.PhaseBadge(phase).Render(st.snapshot.PrintStatus.String()))

		age := m.now().Sub(st.snapshot.UpdatedAt)
		ageStyle := styles.MutedText
		if st.connected && age > StaleAfter {
			ageStyle = styles.WarningText
		}
		parts = append(parts, ageStyle.Render("updated "+humanizeSince(age)))
	}

	if !st.connected && st.err != nil {
		parts = append(parts,
			styles.DangerText.Render(classifyConnectionError(st.err))+" "+
				styles.MutedText.Render(truncate(st.err.Error(), m.errorWidth())))
	}

	return styles.Bar.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderCommandBar renders the key hints, or the address input while editing.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	if m.editing {
		hint := styles.FaintText.Render("  enter connect · esc cancel · empty disconnects")
		return styles.Bar.Width(m.width).Render(m.input.View() + hint)
	}

	segments := make([]string, 0, len(m.keys.ShortHelp())+2)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		segments = append(segments, styles.AccentText.Render(h.Key)+":"+styles.MutedText.Render(h.Desc))
	}
	segments = append(segments, styles.AccentText.Render("T")+":"+styles.FaintText.Render(m.theme.Name))
	if m.notice != "" {
		segments = append(segments, styles.InfoText.Render(m.notice))
	}
	return styles.Bar.Width(m.width).Render(strings.Join(segments, "  "))
}

func (m Model) errorWidth() int {
	if m.width < LayoutCompactWidth {
		return 30
	}
	return 60
}

type tone int

const (
	toneMuted tone = iota
	toneGood
	toneWarn
	toneBad
)

func (m Model) toneStyle(t tone) lipgloss.Style {
	styles := m.theme.Styles()
	switch t {
	case toneGood:
		return styles.SuccessText
	case toneWarn:
		return styles.WarningText.Bold(true)
	case toneBad:
		return styles.DangerText
	default:
		return styles.MutedText
	}
}

// connectionLabel summarizes the supervisor state for the header badge.
func connectionLabel(connected bool, st monitor.State, target string) (string, tone) {
	switch {
	case connected:
		return "CONNECTED", toneGood
	case target == "":
		return "IDLE", toneMuted
	case st == monitor.StateConnecting:
		return "CONNECTING", toneWarn
	case st == monitor.StateReconnecting:
		return "RECONNECTING", toneWarn
	default:
		return "OFFLINE", toneBad
	}
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, websocket.ErrBadHandshake) {
		return "NOT A PRINTER"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "REFUSED"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case monitor.KindOf(err) == monitor.KindTransport:
		return "DROPPED"
	default:
		return "ERROR"
	}
}

// helpKeys converts bindings to help overlay rows.
func helpKeys(bindings []key.Binding) []helpItem {
	items := make([]helpItem, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, helpItem{key: h.Key, desc: h.Desc})
	}
	return items
}
