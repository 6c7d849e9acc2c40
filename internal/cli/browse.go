package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/pipeline"
	"github.com/matzehuels/argwheel/pkg/tree"
	"github.com/matzehuels/argwheel/pkg/viewer"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	cardStyle         = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var zoom []string

	cmd := &cobra.Command{
		Use:   "browse [dataset.json]",
		Short: "Explore a debate interactively in the terminal",
		Long: `Browse walks the argument tree the way the sunburst does: the focus sits
in the center, its sub-arguments around it. Enter zooms into the selected
argument, backspace zooms out, and digits jump to a breadcrumb.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ids []argument.ID
			for _, id := range zoom {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, argument.ID(id))
				}
			}
			return c.runBrowse(cmd.Context(), args[0], ids)
		},
	}
	cmd.Flags().StringSliceVar(&zoom, "zoom", nil, "node ids to zoom into before starting")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, zoom []argument.ID) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return err
	}
	defer runner.Close()

	v := viewer.New(
		viewer.WithLayoutConfig(runner.Config.Layout),
		viewer.WithLogger(c.Logger),
	)
	err = v.Load(ctx, func(ctx context.Context) (*tree.Tree, error) {
		loaded, err := runner.Load(ctx, input)
		if err != nil {
			return nil, err
		}
		return loaded.Tree, nil
	})
	if err != nil {
		return err
	}
	if len(zoom) > 0 {
		t := v.Tree()
		v.Install(t, runner.View(t, pipeline.Options{Zoom: zoom}))
	}

	final, err := tea.NewProgram(NewBrowseModel(v), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(BrowseModel); ok {
		if n := m.viewer.Focus(); n != nil {
			printInfo("Last focus: %s %s", StyleDim.Render(string(n.ID)), n.Title)
		}
	}
	return nil
}

// =============================================================================
// BrowseModel - Interactive zoom navigation
// =============================================================================

// BrowseModel is the bubbletea model for terminal navigation. The cursor
// moves over the children of the focus; the selected child is hovered.
type BrowseModel struct {
	viewer *viewer.Viewer
	Cursor int
	Height int
	Offset int
}

// NewBrowseModel creates a browse model over a loaded viewer.
func NewBrowseModel(v *viewer.Viewer) BrowseModel {
	m := BrowseModel{viewer: v, Height: 12}
	m.hover()
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		children := m.children()
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(children)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if m.Cursor < len(children) {
				id := children[m.Cursor].ID
				arc, _ := m.viewer.Layout().Arc(id)
				if m.viewer.Click(id, arc.Depth) {
					m.reset()
				}
			}
		case "backspace", "esc", "left", "h":
			if m.viewer.ZoomOut() {
				m.reset()
			}
		default:
			if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
				if m.viewer.ZoomToLevel(int(key[0] - '0')) {
					m.reset()
				}
			}
		}
		m.hover()
	case tea.WindowSizeMsg:
		m.viewer.Resize(float64(msg.Width), float64(msg.Height))
		m.Height = msg.Height - 16
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(m.breadcrumbs())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ⏎ zoom in  ⌫ zoom out  0-9 level  q quit"))
	b.WriteString("\n\n")

	focus := m.viewer.Focus()
	if focus == nil {
		b.WriteString(listDimStyle.Render("no dataset loaded"))
		return b.String()
	}
	b.WriteString(StyleTitle.Render(focus.Title))
	b.WriteString("\n")

	children := m.children()
	if len(children) == 0 {
		b.WriteString(listDimStyle.Render("  no sub-arguments"))
		b.WriteString("\n")
	}
	end := min(m.Offset+m.Height, len(children))
	for i := m.Offset; i < end; i++ {
		n := children[i]
		cursor, style := "  ", listNormalStyle
		if i == m.Cursor {
			cursor, style = "▸ ", listSelectedStyle
		}
		marker := lipgloss.NewStyle().Foreground(relationColor(n.RelationType)).Render(relationMarker(n.RelationType))
		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, marker, style.Render(truncate(n.Title, 60)),
			listDimStyle.Render(fmt.Sprintf("(%d)", n.Size()-1)))
	}
	if len(children) > m.Height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(children))))
		b.WriteString("\n")
	}

	if card, ok := m.viewer.HoveredCard(); ok {
		b.WriteString("\n")
		b.WriteString(cardStyle.Render(renderCard(card)))
	}
	return b.String()
}

// breadcrumbs renders the zoom stack with the level index of each entry.
func (m BrowseModel) breadcrumbs() string {
	crumbs := m.viewer.Breadcrumbs()
	parts := make([]string, len(crumbs))
	for i, n := range crumbs {
		label := fmt.Sprintf("%d %s", i, truncate(n.Title, 24))
		if i == len(crumbs)-1 {
			parts[i] = StyleHighlight.Render(label)
		} else {
			parts[i] = listDimStyle.Render(label)
		}
	}
	return strings.Join(parts, listDimStyle.Render(" › "))
}

func (m BrowseModel) children() []*tree.Node {
	if focus := m.viewer.Focus(); focus != nil {
		return focus.Children
	}
	return nil
}

// hover keeps the viewer's hovered node on the cursor.
func (m BrowseModel) hover() {
	children := m.children()
	if m.Cursor < len(children) {
		m.viewer.Hover(children[m.Cursor].ID)
		return
	}
	m.viewer.MouseOut()
}

func (m *BrowseModel) reset() {
	m.Cursor, m.Offset = 0, 0
}

func renderCard(c viewer.Card) string {
	var b strings.Builder
	b.WriteString(StyleValue.Bold(true).Render(c.Title))
	b.WriteString("\n")
	meta := []string{string(c.Type)}
	if c.RelationType != "" {
		meta = append(meta, fmt.Sprintf("%s of %s", c.RelationType, c.Parent))
	}
	if c.Speaker != "" {
		meta = append(meta, c.Speaker)
	}
	meta = append(meta, fmt.Sprintf("intensity %.2f", c.Score.Intensity), fmt.Sprintf("confidence %.2f", c.Score.Confidence))
	b.WriteString(listDimStyle.Render(strings.Join(meta, " · ")))
	if c.Description != "" {
		b.WriteString("\n\n" + c.Description)
	}
	if c.Quote != "" {
		b.WriteString("\n\n" + StyleHighlight.Italic(true).Render("“"+c.Quote+"”"))
	}
	if c.Reasoning != "" {
		b.WriteString("\n\n" + listDimStyle.Render(c.Reasoning))
	}
	return b.String()
}
