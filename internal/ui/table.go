package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(Primary)
			}
			return lipgloss.Style{}
		})

	for _, row := range rows {
		t.Row(row...)
	}

	return t.String()
}

// TreeNode is one line of a rendered directory tree.
type TreeNode struct {
	Name     string
	Dir      bool
	ReadOnly bool
	Size     int64
	Children []TreeNode
}

// RenderTree draws root and its descendants with box-drawing guides.
func RenderTree(root TreeNode) string {
	var b strings.Builder
	b.WriteString(DirectoryStyle.Render(root.Name))
	b.WriteString("\n")
	renderChildren(&b, root.Children, "")
	return b.String()
}

func renderChildren(b *strings.Builder, children []TreeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		b.WriteString(MutedStyle.Render(prefix + branch))
		b.WriteString(renderNodeLabel(child))
		b.WriteString("\n")

		if child.Dir {
			renderChildren(b, child.Children, prefix+indent)
		}
	}
}

func renderNodeLabel(n TreeNode) string {
	if n.Dir {
		return DirectoryStyle.Render(n.Name + "/")
	}
	label := n.Name
	if n.ReadOnly {
		label = ReadOnlyStyle.Render(label)
	}
	return label + MutedStyle.Render(fmt.Sprintf(" (%s)", FormatSize(n.Size)))
}

// FormatSize renders a byte count with a binary unit suffix.
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
