package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/colonyops/todos/internal/core/action"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/core/todo"
)

var filterLabels = map[action.VisibilityFilter]string{
	action.ShowAll:       "All",
	action.ShowActive:    "Active",
	action.ShowCompleted: "Completed",
}

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{
		styles.TitleStyle.Render("Todos"),
		m.renderFilters(),
		m.renderItems(),
	}

	if m.showCounts {
		active, completed := todo.Counts(m.state)
		sections = append(sections, styles.CountStyle.Render(
			fmt.Sprintf("%d active · %d completed", active, completed),
		))
	}

	if m.adding {
		sections = append(sections, m.input.View())
	}

	if m.err != nil {
		sections = append(sections, styles.ErrorStyle.Render("error: "+m.err.Error()))
	}

	if m.adding {
		sections = append(sections, styles.HelpStyle.Render(m.help.View(m.inputKeys)))
	} else {
		sections = append(sections, styles.HelpStyle.Render(m.help.View(m.keys)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFilters() string {
	filters := action.VisibilityFilters()
	tabs := make([]string, 0, len(filters))
	for _, f := range filters {
		style := styles.FilterNormalStyle
		if f == m.state.Filter {
			style = styles.FilterSelectedStyle
		}
		tabs = append(tabs, style.Render(filterLabels[f]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) renderItems() string {
	if len(m.visible) == 0 {
		return styles.StatusStyle.Render("Nothing here. Press a to add a todo.")
	}

	var b strings.Builder
	for i, item := range m.visible {
		cursor := "  "
		textStyle := styles.ItemStyle
		if item.Completed {
			textStyle = styles.ItemCompletedStyle
		}
		if i == m.cursor {
			cursor = styles.ItemSelectedStyle.Render("> ")
			if !item.Completed {
				textStyle = styles.ItemSelectedStyle
			}
		}

		check := "[ ]"
		if item.Completed {
			check = styles.CheckStyle.Render("[x]")
		}

		fmt.Fprintf(&b, "%s%s %s %s", cursor, styles.IndexStyle.Render(fmt.Sprint(item.Index)), check, textStyle.Render(item.Text))
		if i < len(m.visible)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
