package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/services"
	"github.com/kamal-hamza/storefront-cli/pkg/ui"
)

var productsPlain bool

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"ls"},
	Short:   "Browse the mock product catalog (alias: ls)",
	Long: `Fetch the product catalog and show it as a table.

The mock catalog answers after product_delay_ms (5s by default). Prices are
shown in euros; a promotional price follows the struck-through regular price.
Press 'r' in the interactive view to fetch the catalog again.

Use --plain for a non-interactive table.`,
	RunE: runProducts,
}

func init() {
	productsCmd.Flags().BoolVar(&productsPlain, "plain", false, "Print a plain table instead of the interactive view")
}

func runProducts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if productsPlain {
		fmt.Println(ui.FormatMuted("Loading products..."))
		products, err := catalogService.FetchProducts(ctx)
		if err != nil {
			return err
		}
		fmt.Print(renderProductTable(products))
		return nil
	}

	p := tea.NewProgram(newProductsModel(ctx), tea.WithContext(ctx))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running product view: %w", err)
	}
	if m, ok := result.(productsModel); ok && m.err != nil {
		return m.err
	}
	return nil
}

func productRow(p domain.Product) []string {
	return []string{p.ID, p.Type, priceCell(p)}
}

// priceCell strikes the regular price through when a promotion replaces it
func priceCell(p domain.Product) string {
	regular := services.FormatPrice(p.Price)
	if !p.OnPromotion() {
		return regular
	}
	return ui.StyleStrike.Render(regular) + " " + services.FormatPrice(*p.PromotionPrice)
}

func renderProductTable(products []domain.Product) string {
	if len(products) == 0 {
		return ui.FormatWarning("No products available.") + "\n"
	}

	t := ui.NewTable([]ui.TableColumn{
		{Header: "ID"},
		{Header: "TYPE"},
		{Header: "PRICE", Align: "right"},
	})
	for _, p := range products {
		t.AddRow(productRow(p))
	}
	return t.Render()
}

// --- TUI Model ---

type productsLoadedMsg struct {
	products []domain.Product
	err      error
}

type productsModel struct {
	ctx     context.Context
	loading bool
	spinner spinner.Model
	table   table.Model
	count   int
	err     error
}

func newProductsModel(ctx context.Context) productsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorPrimary)

	return productsModel{ctx: ctx, loading: true, spinner: sp}
}

func (m productsModel) fetch() tea.Msg {
	products, err := catalogService.FetchProducts(m.ctx)
	return productsLoadedMsg{products: products, err: err}
}

func (m productsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m productsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetch)
		}

	case productsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.count = len(msg.products)
		m.table = newProductTable(msg.products)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m productsModel) View() string {
	if m.loading {
		return "\n  " + m.spinner.View() + " Loading products...\n"
	}
	if m.count == 0 {
		return "\n  " + ui.FormatWarning("No products available.") + "\n\n  Press 'q' to quit.\n"
	}
	return "\n" +
		ui.FormatTitle(" "+ui.IconCart+" Products ") + "  " +
		ui.FormatBold(fmt.Sprintf("%d", m.count)) + ui.FormatMuted(" listed") + "\n\n" +
		m.table.View() + "\n\n" +
		ui.FormatMuted(" [↑/↓] Move  [r] Refresh  [q] Quit") + "\n"
}

func newProductTable(products []domain.Product) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Type", Width: 24},
		{Title: "Price", Width: 28},
	}

	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, table.Row(productRow(p)))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 12)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.ColorDefault).
		Background(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	return t
}
