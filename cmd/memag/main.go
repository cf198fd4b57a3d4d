package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/memag-ai/memag/internal/inbox"
	"github.com/memag-ai/memag/internal/observability"
	"github.com/memag-ai/memag/internal/profile"
	"github.com/memag-ai/memag/plugin/ai"
	"github.com/memag-ai/memag/plugin/ai/agent"
	"github.com/memag-ai/memag/plugin/ai/memory"
	"github.com/memag-ai/memag/plugin/ai/priority"
	"github.com/memag-ai/memag/plugin/ai/reply"
	"github.com/memag-ai/memag/plugin/ai/summary"
	"github.com/memag-ai/memag/plugin/ai/vector"
	"github.com/memag-ai/memag/server"
	apiv1 "github.com/memag-ai/memag/server/router/api/v1"
	"github.com/memag-ai/memag/store"
	"github.com/memag-ai/memag/store/db"
)

const greetingBanner = `
  __  __                  _    ____
 |  \/  | ___ _ __ ___   / \  / ___|
 | |\/| |/ _ \ '_ ' _ \ / _ \| |  _
 | |  | |  __/ | | | | / ___ \ |_| |
 |_|  |_|\___|_| |_| |_/_/  \_\____|
`

var rootCmd = &cobra.Command{
	Use:   "memag",
	Short: "An AI-augmented personal assistant backend",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		instanceProfile := &profile.Profile{
			Mode:   viper.GetString("mode"),
			Addr:   viper.GetString("addr"),
			Port:   viper.GetInt("port"),
			Data:   viper.GetString("data"),
			Driver: viper.GetString("driver"),
			DSN:    viper.GetString("dsn"),
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		observability.SetupLogger(instanceProfile.IsDev())

		driver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}
		if err := driver.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		storeInstance := store.New(driver, instanceProfile)

		gateway := ai.NewGateway(instanceProfile)

		var index vector.Index
		if instanceProfile.Driver == "postgres" && gateway.IsAvailable() {
			pgIndex, err := vector.NewPGVectorIndex(ctx, driver.GetDB(), 0)
			if err != nil {
				return fmt.Errorf("failed to create pgvector index: %w", err)
			}
			index = pgIndex
		} else {
			index = vector.NewMemoryIndex()
		}
		memoryService := memory.NewService(gateway, index, instanceProfile.MemoryTopK)

		engine := priority.NewEngine(gateway, storeInstance)
		summarizer := summary.NewSummarizer(gateway)
		replyGenerator := reply.NewGenerator(gateway, memoryService, instanceProfile.UserName)
		inboxService := inbox.NewService(storeInstance, memoryService)

		graph, err := agent.NewGraph(agent.NewSupervisor(gateway), map[agent.Route]agent.Worker{
			agent.RouteMemory: agent.NewMemoryWorker(gateway, memoryService),
			agent.RouteEmail:  agent.NewEmailWorker(gateway, storeInstance),
		})
		if err != nil {
			return fmt.Errorf("failed to build agent graph: %w", err)
		}

		if instanceProfile.Mode == "demo" {
			if err := inboxService.SeedDemoData(ctx); err != nil {
				return fmt.Errorf("failed to seed demo data: %w", err)
			}
		}

		apiService := apiv1.NewAPIV1Service(
			instanceProfile, storeInstance, inboxService,
			engine, graph, replyGenerator, summarizer, memoryService,
		)
		srv := server.NewServer(instanceProfile, storeInstance, apiService)

		fmt.Printf("%s\n", greetingBanner)
		slog.Info("starting memag",
			"mode", instanceProfile.Mode,
			"driver", instanceProfile.Driver,
			"ai_provider", instanceProfile.AIProvider,
			"ai_enabled", instanceProfile.IsAIEnabled(),
		)

		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			slog.Info("shutting down")
			cancel()
		}()

		return srv.Start(ctx)
	},
}

func init() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "demo", "dev" or "prod"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8230, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		_ = viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	}
	viper.SetEnvPrefix("memag")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
