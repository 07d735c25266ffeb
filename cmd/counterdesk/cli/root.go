// Package cli wires configuration, the API client and the terminal views into
// the counterdesk command tree.
package cli

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/counterdesk/counterdesk/internal/app"
	"github.com/counterdesk/counterdesk/internal/catalog"
	"github.com/counterdesk/counterdesk/internal/money"
	"github.com/counterdesk/counterdesk/internal/platform/rest"
)

var rootCmd = &cobra.Command{
	Use:   "counterdesk",
	Short: "Terminal client for the counterdesk business dashboard",
	Long: `counterdesk talks to the dashboard REST API and drives the sales and
purchases views from the terminal. Configuration comes from COUNTERDESK_*
environment variables; COUNTERDESK_API_TOKEN is required.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(salesCmd)
	rootCmd.AddCommand(purchasesCmd)
	rootCmd.AddCommand(versionCmd)
}

// runtime holds the shared collaborators every command needs.
type runtime struct {
	cfg     *app.Config
	logger  *slog.Logger
	rest    *rest.Client
	catalog *catalog.Service
	money   *money.Formatter
}

// programOptions keeps the views off the alternate screen under
// COUNTERDESK_TEST_MODE so scripted runs can capture the output.
func programOptions() []tea.ProgramOption {
	if app.InTestMode() {
		return nil
	}
	return []tea.ProgramOption{tea.WithAltScreen()}
}

func newRuntime() (*runtime, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	restClient := rest.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.RequestTimeout)
	return &runtime{
		cfg:     cfg,
		logger:  logger,
		rest:    restClient,
		catalog: catalog.NewService(catalog.NewClient(restClient), logger),
		money:   money.NewFormatter(cfg.CurrencySymbol),
	}, nil
}
