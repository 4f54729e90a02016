package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"sedimentology/internal/accountstore"
	"sedimentology/internal/api"
	"sedimentology/internal/archiver"
	"sedimentology/internal/config"
	"sedimentology/internal/deriver"
	"sedimentology/internal/distributor"
	"sedimentology/internal/engine"
	"sedimentology/internal/replayer"
	"sedimentology/internal/repository"
)

// BuildCommit is set at build time via -ldflags.
var BuildCommit = "dev"

func main() {
	// 1. Config
	godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	log.Printf("Starting sedimentology (%s)", BuildCommit)
	log.Printf("DB: %s", redactDatabaseURL(cfg.DatabaseURL))

	// 2. Dependencies
	repo, err := repository.NewRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	fatal := make(chan error, 4)

	// 3. Workers
	if cfg.EnableReplayer {
		executor, err := engine.LookupExecutor(cfg.ReplayerExecutor)
		if err != nil {
			log.Fatalf("Replayer executor: %v", err)
		}
		accounts, err := openAccountStore(cfg)
		if err != nil {
			log.Fatalf("Account store: %v", err)
		}
		defer accounts.Close()

		worker := replayer.NewWorker(repo, accounts, executor)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := worker.Run(ctx); err != nil {
				fatal <- err
			}
		}()
	} else {
		log.Println("Replayer is DISABLED (ENABLE_REPLAYER=false)")
	}

	if cfg.EnableArchiver {
		if cfg.ArchiverProfile == "" || cfg.ArchiverWorkdir == "" || cfg.ArchiverRcloneRemotePath == "" {
			log.Fatal("ARCHIVER_PROFILE, ARCHIVER_WORKDIR and ARCHIVER_RCLONE_REMOTE_PATH are required")
		}
		worker := archiver.NewWorker(repo, repo, &archiver.Rclone{},
			cfg.ArchiverProfile, cfg.ArchiverWorkdir, cfg.ArchiverRcloneRemotePath)
		if cfg.ArchiverDeriver != "" {
			d, err := deriver.Lookup(cfg.ArchiverDeriver)
			if err != nil {
				log.Fatalf("Archiver deriver: %v", err)
			}
			worker.Deriver = d
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := worker.Run(ctx); err != nil {
				fatal <- err
			}
		}()
	} else {
		log.Println("Archiver is DISABLED (ENABLE_ARCHIVER=false)")
	}

	if cfg.EnableDistributor {
		if cfg.DistributorProfile == "" || cfg.DestDatabaseURL == "" {
			log.Fatal("DISTRIBUTOR_PROFILE and DEST_DATABASE_URL are required")
		}
		var tlsFiles *distributor.TLSFiles
		if cfg.DestTLSCert != "" {
			tlsFiles = &distributor.TLSFiles{
				Cert:   cfg.DestTLSCert,
				Key:    cfg.DestTLSKey,
				RootCA: cfg.DestTLSCA,
			}
		}
		dest, err := distributor.NewDestRepository(ctx, cfg.DestDatabaseURL, tlsFiles)
		if err != nil {
			log.Fatalf("Failed to connect to dest DB: %v", err)
		}
		defer dest.Close()
		log.Printf("Dest DB: %s", redactDatabaseURL(cfg.DestDatabaseURL))

		worker := distributor.NewWorker(repo, dest, cfg.DistributorProfile)
		worker.KeepBlockHeight = cfg.DistributorKeepBlockHeight
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := worker.Run(ctx); err != nil {
				fatal <- err
			}
		}()
	} else {
		log.Println("Distributor is DISABLED (ENABLE_DISTRIBUTOR=false)")
	}

	var apiServer *api.Server
	if cfg.EnableStreamAPI {
		apiServer = api.NewServer(repo, cfg.StreamAPIPort, cfg.StreamRateLimitRPS, cfg.StreamRateLimitBurst)
		go func() {
			log.Printf("[stream-api] listening on :%d", cfg.StreamAPIPort)
			if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
				fatal <- err
			}
		}()
	} else {
		log.Println("Stream API is DISABLED (ENABLE_STREAM_API=false)")
	}

	// 4. Block until shutdown signal or a worker hits a fatal error.
	exitCode := 0
	select {
	case <-sigChan:
		log.Println("Shutting down...")
	case err := <-fatal:
		log.Printf("Fatal worker error: %v", err)
		exitCode = 1
	}
	if apiServer != nil {
		apiServer.Shutdown(ctx)
	}
	cancel()
	wg.Wait()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func openAccountStore(cfg *config.Config) (accountstore.Store, error) {
	switch cfg.ReplayerAccountStore {
	case "", "memory":
		return accountstore.NewMemoryStore(), nil
	case "pebble":
		return accountstore.NewPebbleStore(cfg.ReplayerAccountStorePath)
	default:
		log.Fatalf("Unknown account store %q (want memory or pebble)", cfg.ReplayerAccountStore)
		return nil, nil
	}
}

func redactDatabaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		if u.User != nil {
			user := u.User.Username()
			if user == "" {
				user = "user"
			}
			u.User = url.UserPassword(user, "****")
		}
		// keep only scheme/host/path, query params can carry secrets
		u.RawQuery = ""
		return u.String()
	}

	re := regexp.MustCompile(`(?i)(postgres(?:ql)?://[^:/?#]+):([^@]+)@`)
	if re.MatchString(raw) {
		return re.ReplaceAllString(raw, `$1:****@`)
	}
	re = regexp.MustCompile(`(?i)(password=)(\S+)`)
	return re.ReplaceAllString(raw, `$1****`)
}
