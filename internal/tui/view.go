package tui

import (
	"fmt"
	"strings"

	"employee-directory/internal/domain"
	"employee-directory/internal/permission"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	caps := m.dir.Capabilities()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Employee Directory"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(listHelp(caps)))

	screen := b.String()
	if m.state.Editing() && caps.Edit {
		return lipgloss.JoinVertical(lipgloss.Left, screen, "", m.renderDialog())
	}
	return screen
}

func (m *Model) renderRows() string {
	if m.state.Loading {
		rows := make([]string, skeletonRows)
		for i := range rows {
			rows[i] = skeletonStyle.Render(m.spinner.View() + " ░░░░░░░░░░░░░░░░░░░░░░░░")
		}
		return strings.Join(rows, "\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		return emptyStyle.Render("No employees found")
	}

	rows := make([]string, len(visible))
	for i, e := range visible {
		rows[i] = renderEmployee(e, i == m.cursor)
	}
	return strings.Join(rows, "\n")
}

func renderEmployee(e domain.Employee, selected bool) string {
	body := nameStyle.Render(e.Username) + "\n" +
		detailStyle.Render(fmt.Sprintf("Employee Tag: %s  Phone: %s  Email: %s", e.EmployeeTag, e.PhoneNumber, e.Email))
	if selected {
		return selectedStyle.Render(body)
	}
	return rowStyle.Render(body)
}

func listHelp(caps permission.Capabilities) string {
	keys := []string{"↑/↓ move", "esc clear", "ctrl+r reload"}
	if caps.Edit {
		keys = append(keys, "enter edit")
	}
	if caps.ExportPDF {
		keys = append(keys, "ctrl+p export pdf")
	}
	if caps.ExportSpreadsheet {
		keys = append(keys, "ctrl+s export spreadsheet")
	}
	if caps.CanExport() {
		keys = append(keys, "ctrl+e export all")
	}
	keys = append(keys, "ctrl+c quit")
	return strings.Join(keys, " • ")
}

func (m *Model) renderDialog() string {
	var b strings.Builder
	b.WriteString(nameStyle.Render("Edit Employee"))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render("Employee Tag: " + m.state.Selected.EmployeeTag))
	b.WriteString("\n\n")

	for i, f := range draftFields {
		b.WriteString(labelStyle.Render(f.label))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.formErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state.Saving {
		b.WriteString(m.spinner.View() + " Please wait...")
	} else {
		b.WriteString(helpStyle.Render("tab next field • enter save • esc cancel"))
	}
	return modalStyle.Render(b.String())
}
