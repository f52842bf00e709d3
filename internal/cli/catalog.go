package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"pegboard/internal/board"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleType   = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) catalogCommand() *cobra.Command {
	var (
		search string
		shapes bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the tools available in the palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			bps := cat.Filter(search)
			logger.Debug("catalog filtered", "search", search, "matches", len(bps), "total", cat.Len())
			if len(bps) == 0 {
				fmt.Fprintln(c.stdout, styleDim.Render(fmt.Sprintf("No tools match %q", search)))
				return nil
			}

			fmt.Fprintln(c.stdout, renderCatalog(bps))
			if shapes {
				for _, bp := range bps {
					fmt.Fprintf(c.stdout, "\n%s\n%s\n", bp.Name, bp.Shape)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only tools whose name or type contains this text")
	cmd.Flags().BoolVar(&shapes, "shapes", false, "print each tool's outline")
	return cmd
}

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

func renderCatalog(bps []board.Blueprint) string {
	rows := make([][]string, 0, len(bps))
	for _, bp := range bps {
		rows = append(rows, []string{
			bp.Type,
			bp.Name,
			fmt.Sprintf("%dx%d", bp.Shape.Width(), bp.Shape.Height()),
			fmt.Sprintf("%d", bp.Shape.Count()),
			strings.ToUpper(bp.Color),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Name", "Size", "Holes", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == headerRow:
				return base.Inherit(styleHeader)
			case col == 0:
				return base.Inherit(styleType)
			case col == 4 && row < len(bps):
				return base.Foreground(lipgloss.Color(bps[row].Color))
			}
			return base
		})
	return t.Render()
}
