package commands

import (
	"fmt"

	"employee_management/config"
	"employee_management/handlers"
	"employee_management/metrics"
	"employee_management/services"
	"employee_management/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds what every subcommand shares once the root command has loaded the configuration.
type App struct {
	Config   config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Services *services.Services
}

func New() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:          "ems",
		Short:        "Employee management backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newMigrateCmd(app))
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))

	return rootCmd
}

func (a *App) setup(cmd *cobra.Command) error {
	if err := config.LoadConfig(); err != nil {
		return err
	}
	a.Config = config.AppConfig

	if err := utils.InitLogger(a.Config.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := config.OpenDatabase(a.Config)
	if err != nil {
		return err
	}
	a.DB = db

	rdb, err := config.ConnectRedis(cmd.Context(), a.Config)
	if err != nil {
		return err
	}
	a.Redis = rdb

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector())
	a.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.NewMetrics(a.Registry)

	var publisher services.Publisher = services.NopPublisher{}
	if rdb != nil {
		publisher = services.NewRedisPublisher(rdb)
	}

	a.Services = services.New(services.Deps{
		DB:        db,
		Config:    a.Config,
		Logger:    utils.Logger,
		Metrics:   a.Metrics,
		Publisher: publisher,
	})
	handlers.InitHandlers(db, a.Services, rdb)

	return nil
}

func (a *App) close() error {
	defer func() { _ = utils.Logger.Sync() }()

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			utils.Logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
