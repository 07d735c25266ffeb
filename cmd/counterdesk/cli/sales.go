package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/counterdesk/counterdesk/internal/sales"
	"github.com/counterdesk/counterdesk/internal/ui"
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Browse and record sales",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		mod := sales.NewModule(sales.NewClient(rt.rest), rt.catalog, rt.logger)
		program := tea.NewProgram(ui.NewSalesModel(mod, rt.money), programOptions()...)
		_, err = program.Run()
		return err
	},
}

var salesNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Open the new-sale form directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		mod := sales.NewModule(sales.NewClient(rt.rest), rt.catalog, rt.logger)
		program := tea.NewProgram(ui.NewSalesModel(mod, rt.money).StartInForm(), programOptions()...)
		_, err = program.Run()
		return err
	},
}

var salesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the sales list without the interactive view",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		mod := sales.NewModule(sales.NewClient(rt.rest), rt.catalog, rt.logger)
		if err := mod.Load(cmd.Context()); err != nil {
			return err
		}

		sum := mod.Summary()
		fmt.Printf("Sales: %d  Revenue: %s  Average: %s\n\n",
			sum.Count, rt.money.Format(sum.TotalRevenue), rt.money.Format(sum.AverageSale))
		for _, sale := range mod.Sales() {
			fmt.Printf("#%-5d %-28s %12s  %s\n",
				sale.ID, sale.CustomerName, rt.money.Format(sale.TotalAmount),
				sale.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	salesCmd.AddCommand(salesListCmd)
	salesCmd.AddCommand(salesNewCmd)
}
