package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dash/internal/dash/app"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

func newRolesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Inspect roles",
	}
	cmd.AddCommand(newRolesTreeCmd(opts))
	return cmd
}

func newRolesTreeCmd(opts *options) *cobra.Command {
	var expandAll bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the role hierarchy",
		Long: "Print the role hierarchy. Like the dashboard, only the roots are\n" +
			"expanded unless --expand-all is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg)
			ctx := slogx.WithContext(cmd.Context(), logger)

			db, err := app.OpenStore(cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			forest, err := (&service.RolesService{Store: db}).Hierarchy(ctx)
			if err != nil {
				return err
			}

			expanded := hierarchy.NewExpansionSet(forest)
			if expandAll {
				expanded.ExpandAll(forest)
			}
			return printForest(cmd.OutOrStdout(), forest, expanded, newTreeStyles())
		},
	}
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "expand every role")
	return cmd
}

type treeStyles struct {
	name      lipgloss.Style
	system    lipgloss.Style
	custom    lipgloss.Style
	muted     lipgloss.Style
	warning   lipgloss.Style
	enumerate lipgloss.Style
}

func newTreeStyles() treeStyles {
	return treeStyles{
		name:      lipgloss.NewStyle().Bold(true),
		system:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7c3aed")),
		custom:    lipgloss.NewStyle().Foreground(lipgloss.Color("#0891b2")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706")),
		enumerate: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).MarginRight(1),
	}
}

func printForest(w io.Writer, f *hierarchy.Forest, expanded *hierarchy.ExpansionSet, st treeStyles) error {
	if len(f.Roots) == 0 {
		_, err := fmt.Fprintln(w, st.muted.Render("No roles yet."))
		return err
	}

	t := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(st.enumerate)
	for _, n := range f.Roots {
		t.Child(nodeTree(n, expanded, st))
	}

	summary := hierarchy.Summarize(f.Roles())
	_, err := fmt.Fprintf(w, "%s\n%s\n", t.String(),
		st.muted.Render(fmt.Sprintf("%d roles, %d categories", f.Len(), len(summary.Categories()))))
	return err
}

// nodeTree returns a plain label for closed nodes and a subtree for open ones.
func nodeTree(n *hierarchy.Node, expanded *hierarchy.ExpansionSet, st treeStyles) any {
	label := nodeLabel(n, expanded, st)
	if !expanded.Open(n) {
		return label
	}

	t := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(st.enumerate)
	for _, c := range n.Children {
		t.Child(nodeTree(c, expanded, st))
	}
	return t
}

func nodeLabel(n *hierarchy.Node, expanded *hierarchy.ExpansionSet, st treeStyles) string {
	badge := st.custom.Render("[" + n.Role.Badge() + "]")
	if n.Role.IsSystem {
		badge = st.system.Render("[" + n.Role.Badge() + "]")
	}

	users := "users"
	if n.Role.UserCount == 1 {
		users = "user"
	}
	label := fmt.Sprintf("%s %s %s", st.name.Render(n.Role.Name), badge,
		st.muted.Render(fmt.Sprintf("%d %s, %d permissions", n.Role.UserCount, users, n.Role.Permissions.Count())))

	switch {
	case n.Orphaned:
		label += " " + st.warning.Render("(parent missing)")
	case n.CycleBroken:
		label += " " + st.warning.Render("(loop cut)")
	}
	if n.HasChildren() && !expanded.Open(n) {
		label += " " + st.muted.Render(fmt.Sprintf("+%d hidden", n.Descendants()))
	}
	return label
}
