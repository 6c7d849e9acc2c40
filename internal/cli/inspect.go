package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "inspect [dataset.json]",
		Short: "Summarize a debate dataset",
		Long: `Inspect loads a dataset, builds its argument tree and reports its size,
the propositions that could not be attached, and any data issues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], showTree)
		},
	}
	cmd.Flags().BoolVar(&showTree, "tree", false, "print the full argument tree")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, showTree bool) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return err
	}
	defer runner.Close()

	loaded, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	t := loaded.Tree

	fmt.Println(StyleTitle.Render(t.Root.Title))
	printKeyValue("Thesis", string(t.Root.ID))
	printKeyValue("Nodes", strconv.Itoa(t.Len()))
	printKeyValue("Depth", strconv.Itoa(t.MaxDepth()))
	printKeyValue("Hash", shortHash(loaded.Hash))
	printNewline()

	if len(t.Root.Children) > 0 {
		fmt.Println(argumentTable(t.Root.Children))
		printNewline()
	}

	if showTree {
		fmt.Print(renderTree(t.Root))
		printNewline()
	}

	if len(t.Dropped) > 0 {
		printWarning("%d proposition(s) not reachable from the thesis", len(t.Dropped))
		for _, id := range t.Dropped {
			printDetail("%s", id)
		}
	}
	issues := loaded.Dataset.Validate()
	for _, issue := range issues {
		printWarning("%s", issue)
	}
	if len(t.Dropped) == 0 && len(issues) == 0 {
		printSuccess("No issues found")
	}
	return nil
}

// argumentTable lists the top-level arguments with their subtree sizes.
func argumentTable(nodes []*tree.Node) string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			string(n.ID),
			string(n.RelationType),
			truncate(n.Title, 48),
			fmt.Sprintf("%.2f", n.Score.Intensity),
			strconv.Itoa(n.Size()),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "RELATION", "TITLE", "INTENSITY", "NODES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(colorCyan)
			}
			if col == 1 && row >= 0 && row < len(nodes) {
				return s.Foreground(relationColor(nodes[row].RelationType))
			}
			return s
		}).
		String()
}

// renderTree draws n and its descendants as an indented outline.
func renderTree(n *tree.Node) string {
	var b strings.Builder
	n.Walk(func(node *tree.Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		marker := StyleHighlight.Render("●")
		if !node.IsRoot() {
			marker = lipgloss.NewStyle().Foreground(relationColor(node.RelationType)).Render(relationMarker(node.RelationType))
		}
		fmt.Fprintf(&b, "%s %s %s\n", marker, StyleDim.Render(string(node.ID)), truncate(node.Title, 64))
		return true
	})
	return b.String()
}

func relationColor(r argument.RelationType) lipgloss.Color {
	switch r {
	case argument.RelationSupport:
		return colorGreen
	case argument.RelationAttack:
		return colorRed
	default:
		return colorGray
	}
}

func relationMarker(r argument.RelationType) string {
	switch r {
	case argument.RelationSupport:
		return "+"
	case argument.RelationAttack:
		return "-"
	default:
		return "?"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
