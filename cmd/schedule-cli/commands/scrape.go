package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewlink/crew-schedule-scraper/internal/adapter/crewportal"
	"github.com/crewlink/crew-schedule-scraper/internal/config"
	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
	"github.com/crewlink/crew-schedule-scraper/internal/usecase"
)

// PasswordEnv holds the portal password so it never appears in shell history or process listings.
const PasswordEnv = "CREW_PORTAL_PASSWORD"

var errMissingPassword = errors.New(PasswordEnv + " is not set")

type scrapeFlags struct {
	tenant string
	user   string
	output string
}

var flags scrapeFlags

func init() {
	scrapeCmd.Flags().StringVar(&flags.tenant, "tenant", "", "Tenant (airline) code, e.g. ual")
	scrapeCmd.Flags().StringVar(&flags.user, "user", "", "Portal user ID")
	scrapeCmd.Flags().StringVarP(&flags.output, "output", "o", outputTable, "Output format: table or json")
	_ = scrapeCmd.MarkFlagRequired("tenant")
	_ = scrapeCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --tenant <code> --user <id> [--output table|json]",
	Short: "Logs in and prints the previous, current and next month's flights.",
	Long:  "Logs in and prints the previous, current and next month's flights.\nThe password is read from " + PasswordEnv + ".",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !validOutput(flags.output) {
			return fmt.Errorf("unknown output format %q", flags.output)
		}

		password := os.Getenv(PasswordEnv)
		if password == "" {
			return errMissingPassword
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		uc, err := newScrapeUseCase(cfg)
		if err != nil {
			return err
		}

		creds := domain.Credentials{
			UserID:     strings.TrimSpace(flags.user),
			Password:   password,
			TenantCode: strings.TrimSpace(flags.tenant),
		}

		result, scrapeErr := uc.Scrape(cmd.Context(), creds)
		if result != nil {
			if err := render(cmd.OutOrStdout(), flags.output, result); err != nil {
				return err
			}
		}
		if scrapeErr != nil {
			// The rendered result already carries the user-facing message
			return errors.New("scrape failed")
		}
		return nil
	},
}

func newScrapeUseCase(cfg *config.Config) (usecase.ScrapeUseCase, error) {
	tenants, err := config.LoadTenants(cfg.Portal.TenantsFile, cfg.Portal.Defaults)
	if err != nil {
		return nil, err
	}

	// Logs go to stderr so the rendered result can be piped
	log := logger.NewWithOutput(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      "console",
		ServiceName: "schedule-cli",
	}, os.Stderr)

	factory := crewportal.NewFactory(crewportal.Options{
		BaseURL:   cfg.Portal.BaseURL,
		Timeout:   cfg.Portal.RequestTimeout,
		UserAgent: cfg.Portal.UserAgent,
		Tenants:   tenants,
		Logger:    log,
	})

	return usecase.NewScrapeUseCase(factory, &usecase.Config{
		Clock:     timeutil.NewZonedClock(timeutil.NewRealClock(), cfg.Portal.Location()),
		Normalize: crewportal.Normalize,
		Logger:    log,
	}), nil
}
