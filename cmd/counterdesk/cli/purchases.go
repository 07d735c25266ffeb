package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/counterdesk/counterdesk/internal/purchases"
	"github.com/counterdesk/counterdesk/internal/ui"
)

var purchasesCmd = &cobra.Command{
	Use:   "purchases",
	Short: "Browse and record purchases",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		mod := purchases.NewModule(purchases.NewClient(rt.rest), rt.catalog, rt.logger)
		program := tea.NewProgram(ui.NewPurchasesModel(mod, rt.money), programOptions()...)
		_, err = program.Run()
		return err
	},
}

var purchasesNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Open the new-purchase form directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		mod := purchases.NewModule(purchases.NewClient(rt.rest), rt.catalog, rt.logger)
		program := tea.NewProgram(ui.NewPurchasesModel(mod, rt.money).StartInForm(), programOptions()...)
		_, err = program.Run()
		return err
	},
}

var purchasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the purchases list without the interactive view",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		mod := purchases.NewModule(purchases.NewClient(rt.rest), rt.catalog, rt.logger)
		if err := mod.Load(cmd.Context()); err != nil {
			return err
		}

		sum := mod.Summary()
		fmt.Printf("Purchases: %d  Cost: %s  Average: %s\n\n",
			sum.Count, rt.money.Format(sum.TotalCost), rt.money.Format(sum.AveragePurchase))
		for _, purchase := range mod.Purchases() {
			fmt.Printf("#%-5d %-28s %12s  %s\n",
				purchase.ID, purchase.SupplierName, rt.money.Format(purchase.TotalAmount),
				purchase.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	purchasesCmd.AddCommand(purchasesListCmd)
	purchasesCmd.AddCommand(purchasesNewCmd)
}
