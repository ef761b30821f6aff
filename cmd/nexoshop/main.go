package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/ai/rag"
	"github.com/gabrieloporto/nexoshop/ai/vector"
	"github.com/gabrieloporto/nexoshop/ai/vector/memoryindex"
	"github.com/gabrieloporto/nexoshop/internal/profile"
	"github.com/gabrieloporto/nexoshop/internal/version"
	"github.com/gabrieloporto/nexoshop/server"
	"github.com/gabrieloporto/nexoshop/store"
	"github.com/gabrieloporto/nexoshop/store/db"
	"github.com/gabrieloporto/nexoshop/store/db/postgres"
)

var rootCmd = &cobra.Command{
	Use:   "nexoshop",
	Short: `An e-commerce storefront backend with a RAG shopping assistant: semantic product search and grounded chat over the catalog.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Only load .env for direct binary execution; service managers set
		// environment variables themselves.
		if !isRunningAsSystemdService() {
			_ = godotenv.Load()
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := loadProfile()

		ctx, cancel := context.WithCancel(context.Background())
		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			cancel()
			slog.Error("failed to create db driver", "error", err)
			return
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			cancel()
			slog.Error("failed to migrate", "error", err)
			return
		}

		embedder, index, retriever, generator := setupAI(instanceProfile, dbDriver)

		// The in-memory index starts empty, so demo mode indexes the seeded
		// catalog before serving.
		var syncReport *rag.SyncReport
		if instanceProfile.IsDemo() && retriever != nil {
			syncReport, err = rag.NewSyncer(storeInstance, embedder, index).Run(ctx)
			if err != nil {
				slog.Warn("failed to index demo catalog", "error", err)
			}
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance, retriever, generator)
		if err != nil {
			cancel()
			slog.Error("failed to create server", "error", err)
			return
		}
		if syncReport != nil {
			if stats, err := index.Stats(ctx); err == nil {
				s.ReportSyncMetrics(syncReport, stats.TotalRecordCount)
			}
		}

		c := make(chan os.Signal, 1)
		// Trigger graceful shutdown on SIGINT or SIGTERM. SIGTERM is what
		// most process managers send first.
		signal.Notify(c, terminationSignals...)

		if err := s.Start(ctx); err != nil {
			slog.Error("failed to start server", "error", err)
			cancel()
		}

		printGreetings(instanceProfile)

		go func() {
			<-c
			s.Shutdown(ctx)
			cancel()
		}()

		<-ctx.Done()
	},
}

var syncIndexCmd = &cobra.Command{
	Use:   "sync-index",
	Short: "Re-embed the whole product catalog and upsert it into the vector index",
	Run: func(cmd *cobra.Command, _ []string) {
		instanceProfile := loadProfile()

		ctx := cmd.Context()
		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			slog.Error("failed to create db driver", "error", err)
			os.Exit(1)
		}
		defer dbDriver.Close()

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate", "error", err)
			os.Exit(1)
		}

		aiConfig := ai.NewConfigFromProfile(instanceProfile)
		embedder, err := ai.NewEmbeddingService(&aiConfig.Embedding)
		if err != nil {
			slog.Error("failed to create embedding service", "error", err)
			os.Exit(1)
		}

		index := newVectorIndex(instanceProfile, dbDriver)
		report, err := rag.NewSyncer(storeInstance, embedder, index).Run(ctx)
		if err != nil {
			slog.Error("sync failed", "error", err)
			os.Exit(1)
		}

		fmt.Printf("Synced %d/%d products (%d skipped) in %s\n",
			report.Upserted, report.CatalogTotal, report.Skipped, report.Duration)
	},
}

func loadProfile() *profile.Profile {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Addr:    viper.GetString("addr"),
		Port:    viper.GetInt("port"),
		DSN:     viper.GetString("dsn"),
		Version: version.GetCurrentVersion(viper.GetString("mode")),
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		panic(err)
	}
	return instanceProfile
}

// setupAI builds the AI pipeline from the profile. Returns nils when the
// providers are not configured; the catalog API works without them.
func setupAI(instanceProfile *profile.Profile, driver store.Driver) (ai.EmbeddingService, vector.Index, *rag.Retriever, *rag.Generator) {
	if !instanceProfile.IsAIEnabled() {
		slog.Info("AI features disabled, chat and semantic search unavailable")
		return nil, nil, nil, nil
	}

	aiConfig := ai.NewConfigFromProfile(instanceProfile)
	embedder, err := ai.NewEmbeddingService(&aiConfig.Embedding)
	if err != nil {
		slog.Warn("failed to initialize embedding service", "error", err)
		return nil, nil, nil, nil
	}
	llm, err := ai.NewLLMService(&aiConfig.LLM)
	if err != nil {
		slog.Warn("failed to initialize LLM service", "error", err)
		return nil, nil, nil, nil
	}

	index := newVectorIndex(instanceProfile, driver)
	slog.Info("AI pipeline initialized",
		"embedding_model", aiConfig.Embedding.Model,
		"llm_model", aiConfig.LLM.Model,
	)
	return embedder, index, rag.NewRetriever(embedder, index), rag.NewGenerator(llm)
}

// newVectorIndex picks the vector index implementation: pgvector when the
// store runs on PostgreSQL, in-memory otherwise.
func newVectorIndex(instanceProfile *profile.Profile, driver store.Driver) vector.Index {
	if pgDriver, ok := driver.(*postgres.DB); ok && !instanceProfile.IsDemo() {
		return postgres.NewVectorIndex(pgDriver)
	}
	return memoryindex.New()
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("port", 8080)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of server")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	for _, flag := range []string{"mode", "addr", "port", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("nexoshop")
	viper.AutomaticEnv()

	rootCmd.AddCommand(syncIndexCmd)
}

func printGreetings(instanceProfile *profile.Profile) {
	fmt.Printf("NexoShop %s started successfully!\n", instanceProfile.Version)

	if instanceProfile.IsDev() {
		fmt.Fprint(os.Stderr, "Development mode is enabled\n")
		if instanceProfile.DSN != "" {
			fmt.Fprintf(os.Stderr, "Database: %s\n", instanceProfile.DSN)
		}
	}

	fmt.Printf("Mode: %s\n", instanceProfile.Mode)
	if len(instanceProfile.Addr) == 0 {
		fmt.Printf("Server running on port %d\n", instanceProfile.Port)
		fmt.Printf("Access NexoShop at: http://localhost:%d\n", instanceProfile.Port)
	} else {
		fmt.Printf("Server running on %s:%d\n", instanceProfile.Addr, instanceProfile.Port)
	}
}

// isRunningAsSystemdService detects if the process is running under systemd.
func isRunningAsSystemdService() bool {
	return os.Getenv("INVOCATION_ID") != "" || os.Getenv("WATCHDOG_USEC") != ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
