package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"solarfin/pkg/api/analysis"
	"solarfin/pkg/api/config"
	"solarfin/pkg/core/cache"
	"solarfin/pkg/core/pipeline"
	"solarfin/pkg/core/refresh"
	"solarfin/pkg/core/store"
	"solarfin/pkg/core/tariff"
)

// ServerConfig is config/server.yaml. Every field has a usable zero-config
// default so the binary starts with no file at all.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	DefaultsFile string `yaml:"defaults_file"`
	CacheTTLh    int    `yaml:"cache_ttl_hours"`
	RefreshCron  string `yaml:"refresh_cron"`
	StaleDays    int    `yaml:"stale_days"`
	RefreshBatch int    `yaml:"refresh_batch"`
}

func loadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Port:         8080,
		DefaultsFile: "config/defaults.hjson",
		CacheTTLh:    24,
		RefreshCron:  "0 3 * * *",
		StaleDays:    30,
		RefreshBatch: 50,
	}
	data, err := os.ReadFile("config/server.yaml")
	if err != nil {
		fmt.Println("[CONFIG] No config/server.yaml, using defaults")
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse server.yaml: %v\n", err)
	}
	return cfg
}

func main() {
	godotenv.Load()

	cfg := loadServerConfig()
	ctx := context.Background()

	// Engine defaults (tariffs, irradiation, degradation). A missing file
	// falls back to the compiled-in tables.
	defaults, err := tariff.Load(cfg.DefaultsFile)
	if err != nil {
		fmt.Printf("[CONFIG] %v; using builtin defaults\n", err)
		defaults = tariff.Builtin()
	} else {
		fmt.Printf("[CONFIG] Loaded defaults from %s (%d distributors)\n", cfg.DefaultsFile, len(defaults.Distributors))
	}

	orch := pipeline.NewOrchestrator()

	// Persistence is optional: without DATABASE_URL the API still computes,
	// it just cannot store or refresh projects.
	var repo store.ProjectRepository
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[STORE] Running without persistence: %v\n", err)
	} else {
		repo = store.NewProjectRepo()
		orch.SetRepository(repo)
		defer store.Close()
	}

	// Result cache is optional too.
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rc := cache.NewRedisCache(addr)
		if err := rc.Ping(ctx); err != nil {
			fmt.Printf("[CACHE] Redis unavailable, running uncached: %v\n", err)
		} else {
			orch.SetCache(rc, time.Duration(cfg.CacheTTLh)*time.Hour)
			fmt.Printf("[CACHE] Redis connected at %s\n", addr)
		}
	}

	analysisHandler := analysis.NewHandler(orch, repo, defaults)
	http.HandleFunc("/api/analysis/run", analysisHandler.HandleRun)
	http.HandleFunc("/api/analysis/project", analysisHandler.HandleProject)
	http.HandleFunc("/api/analysis/report", analysisHandler.HandleReport)

	configHandler := config.NewHandler(defaults)
	http.HandleFunc("/api/config/defaults", configHandler.HandleDefaults)
	http.HandleFunc("/api/config/tariff", configHandler.HandleTariffUpload)

	// Nightly recomputation keeps stored proposals aligned with current
	// defaults. Only meaningful with a repository attached.
	if repo != nil {
		refresher := refresh.NewRefresher(orch, repo, time.Duration(cfg.StaleDays)*24*time.Hour, cfg.RefreshBatch)
		if err := refresher.Register(cfg.RefreshCron); err != nil {
			fmt.Printf("[WARNING] Refresh job not scheduled: %v\n", err)
		} else {
			refresher.Start()
			defer refresher.Stop()
			fmt.Printf("[REFRESH] Scheduled at %q (stale after %dd, batch %d)\n", cfg.RefreshCron, cfg.StaleDays, cfg.RefreshBatch)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/analysis/run")
	fmt.Println("  - GET  /api/analysis/project?id=<uuid>")
	fmt.Println("  - POST /api/analysis/report?formato=html|md")
	fmt.Println("  - GET  /api/config/defaults")
	fmt.Println("  - POST /api/config/tariff")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
