package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/mailgate/internal/accounts"
	"github.com/ignite/mailgate/internal/api"
	"github.com/ignite/mailgate/internal/bounce"
	"github.com/ignite/mailgate/internal/config"
	"github.com/ignite/mailgate/internal/dispatch"
	"github.com/ignite/mailgate/internal/eligibility"
	"github.com/ignite/mailgate/internal/mailtemplate"
	"github.com/ignite/mailgate/internal/validator"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// checkPortAvailable verifies that the target port is not already in use.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

// loadTemplates registers every .liquid file in dir under its base name.
func loadTemplates(engine *mailtemplate.Engine, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		log.Printf("No template directory at %s, continuing without templates", dir)
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".liquid") {
			continue
		}
		source, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(entry.Name(), ".liquid")
		if err := engine.Register(name, string(source)); err != nil {
			return err
		}
		log.Printf("Registered template %q", name)
	}
	return nil
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bounce registry. No table configured means degraded mode: suppression
	// checks are skipped rather than blocking sends.
	var store bounce.Store
	if cfg.Storage.BounceTable != "" {
		dynamoStore, err := bounce.NewDynamoStore(ctx, cfg.Storage.BounceTable, cfg.Storage.AWSRegion, cfg.Storage.GetAWSProfile())
		if err != nil {
			log.Fatalf("Failed to initialize bounce store: %v", err)
		}
		store = dynamoStore
		log.Printf("Bounce registry backed by table %s", cfg.Storage.BounceTable)
	} else {
		log.Println("WARNING: no bounce table configured, suppression checks disabled")
	}
	registry := bounce.NewRegistry(store)

	// Account directory.
	if cfg.Accounts.DatabaseURL == "" {
		log.Fatalf("accounts.database_url (or DATABASE_URL) is required")
	}
	db, err := sql.Open("postgres", cfg.Accounts.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open account database: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Printf("WARNING: account database not reachable yet: %v", err)
	}
	directory := accounts.NewPostgresDirectory(db)

	// Validation cache.
	var cache *validator.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		cache = validator.NewCache(rdb, cfg.Verification.CacheTTL())
		log.Printf("Validation cache backed by redis at %s", cfg.Redis.Addr)
	}

	checker := validator.New(
		validator.Options{
			CheckRegex:      cfg.Verification.CheckRegex,
			CheckMX:         cfg.Verification.CheckMX,
			CheckDisposable: cfg.Verification.CheckDisposable,
			CheckSMTP:       cfg.Verification.CheckSMTP,
		},
		cfg.Verification.DisposableDomains,
		cfg.Verification.ProbeHELO,
		cfg.Verification.ProbeFrom,
		cache,
	)

	evaluator := eligibility.NewEvaluator(registry, directory, checker, cfg.Verification.Enabled)

	// Mail transport behind the dispatch guard.
	transport, err := dispatch.NewSESTransport(ctx, cfg.SES.Region, cfg.SES.AccessKey, cfg.SES.SecretKey, cfg.SES.Timeout())
	if err != nil {
		log.Fatalf("Failed to initialize SES transport: %v", err)
	}
	guard := dispatch.NewGuard(registry, transport)

	site := mailtemplate.Site{
		Name:          cfg.Site.Name,
		SenderName:    cfg.Site.SenderName,
		SenderAddress: cfg.Site.SenderAddress,
		LogoURL:       cfg.Site.LogoURL,
		BaseURL:       cfg.Site.BaseURL,
	}
	templates := mailtemplate.NewEngine(site)
	if err := loadTemplates(templates, "config/templates"); err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	handlers := api.NewHandlers(evaluator, guard, registry, templates, site)
	server := api.NewServer(handlers)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, cfg.Server.Port)
		log.Printf("Starting gatekeeper on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
