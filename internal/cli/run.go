package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"merchant-console/internal/config"
	"merchant-console/internal/logger"
	"merchant-console/internal/prompt"
	"merchant-console/internal/render"
	"merchant-console/internal/repository"
	"merchant-console/internal/service"
	"merchant-console/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive console",
	Long: `Start the interactive console on the current terminal.

The three flat-file stores are loaded from the data directory before
the welcome page appears; missing or empty user and category files are
seeded with default data.`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	// A missing .env file is fine; the config defaults cover it.
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Console.Env, cfg.Console.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v; session logging is disabled\n",
			cfg.Console.LogFile, err)
		log = logger.NewWithDefaults()
	}
	defer log.Sync()

	log.Info("starting merchant console",
		zap.String("env", cfg.Console.Env),
		zap.String("data_dir", cfg.Store.DataDir),
	)

	fs := afero.NewOsFs()
	ui := render.NewConsole(os.Stdout)
	in := prompt.NewReader(os.Stdin, ui)

	users := repository.NewUserRepository(repository.NewFileStore(fs, cfg.Store.UserPath()))
	products := repository.NewProductRepository(repository.NewFileStore(fs, cfg.Store.ProductPath()))
	categories := repository.NewCategoryRepository(repository.NewFileStore(fs, cfg.Store.CategoryPath()))

	type load struct {
		path   string
		report repository.LoadReport
		err    error
	}
	loads := make([]load, 0, 3)

	report, err := users.Load()
	loads = append(loads, load{cfg.Store.UserPath(), report, err})
	report, err = products.Load()
	loads = append(loads, load{cfg.Store.ProductPath(), report, err})
	report, err = categories.Load()
	loads = append(loads, load{cfg.Store.CategoryPath(), report, err})

	for _, l := range loads {
		if l.err != nil {
			return fmt.Errorf("failed to load %s: %w", l.path, l.err)
		}
		ui.StoreNotice(l.path, l.report.SeededDefaults, l.report.InvalidLines)
		log.Info("store loaded",
			zap.String("path", l.path),
			zap.Bool("seeded_defaults", l.report.SeededDefaults),
			zap.Int("invalid_lines", l.report.InvalidLines),
		)
	}

	userService := service.NewUserService(users)
	inventoryService := service.NewInventoryService(products, categories)
	checkoutService := service.NewCheckoutService(products, userService)

	session := workflow.NewSession(ui, in, log, userService, inventoryService, checkoutService, products, categories)
	session.Run()

	log.Info("merchant console exiting")
	return nil
}
