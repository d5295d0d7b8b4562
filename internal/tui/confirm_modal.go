package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No nested borders: some terminals leave background artifacts.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func modalBoxWidth(width int) int {
	return clamp(width-8, 24, 72)
}

// modalBodyWidth is the room inside the border and padding.
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 4
}

func renderModalBox(width int, title string, content string) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(modalBoxWidth(width) - 2).
		Render(head + "\n\n" + content)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// renderInputModal boxes a one-line text field followed by notes and the
// key hint. The field never wraps: long values are cut at the box edge.
func renderInputModal(width int, title string, inputView string, notes ...string) string {
	bodyW := modalBodyWidth(width)
	field := xansi.Truncate(lineBreaks.Replace(inputView), bodyW-2, "…")
	field = lipgloss.NewStyle().
		Background(colorInputBg).
		Padding(0, 1).
		Width(bodyW).
		Render(field)

	lines := []string{field}
	if len(notes) > 0 {
		lines = append(lines, "")
		for _, n := range notes {
			lines = append(lines, styleMuted().Width(bodyW).Render(n))
		}
	}
	lines = append(lines, "", styleMuted().Width(bodyW).Render("enter: ok   esc: cancel"))
	return renderModalBox(width, title, strings.Join(lines, "\n"))
}
