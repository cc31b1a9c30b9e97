package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"homebase/app/config"
	"homebase/app/routes"
	"homebase/app/services"
	"homebase/app/storage"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("homebase version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: homebase <command>
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the control center server.

Configuration comes from the environment: LISTEN_ADDR, STORAGE_BACKEND
(badger or s3), BADGER_PATH, S3_ENDPOINT/S3_BUCKET/S3_ACCESS_KEY/
S3_SECRET_KEY/S3_REGION, LOG_LEVEL, and API_KEY for write access.
`
	fmt.Println(helpText)
}

// serve loads configuration, opens the blob store and runs the HTTP server.
func serve() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	blogStore, backupStore, closeStore, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer closeStore()

	blog := services.NewBlogService(blogStore)
	backups := services.NewBackupService(blogStore, backupStore)
	router := routes.SetupRoutes(blog, backups, config.EnvParams{})

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("backend", cfg.StorageBackend).
		Msg("starting homebase server")
	if err := routes.StartServer(cfg.ListenAddr, router); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
