package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hebed-ai/accelerator-landing/config"
	"github.com/hebed-ai/accelerator-landing/domain/waitlist"
	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/migrations"
	"github.com/hebed-ai/accelerator-landing/pkg/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		if err := runMigrate(logger, args[1:]); err != nil {
			logger.Error("Database migration failed", "error", err.Error())
			os.Exit(1)
		}
		return

	case "sources":
		if err := runSources(logger); err != nil {
			logger.Error("Failed to count waitlist submissions", "error", err.Error())
			os.Exit(1)
		}
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func openDatabase(logger *log.Logger) (*gorm.DB, func(), error) {
	db, err := config.NewDatabase(logger, config.NewDBConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, func() { config.CloseDatabase(db, logger) }, nil
}

func runMigrate(logger *log.Logger, args []string) error {
	db, closeDB, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDB()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance: %w", err)
	}

	cfg := migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", migrations.DefaultDir),
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	switch direction {
	case "up":
		if err := migrations.Up(ctx, sqlDB, cfg); err != nil {
			return err
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[1])
			}
		}
		if err := migrations.Down(ctx, sqlDB, cfg, steps); err != nil {
			return err
		}
	case "version":
		status, err := migrations.CurrentStatus(ctx, sqlDB, cfg)
		if err != nil {
			return err
		}
		if !status.Applied {
			fmt.Println("no migrations applied")
			return nil
		}
		fmt.Printf("version %d (dirty: %t)\n", status.Version, status.Dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}

	logger.Info("Database migrations completed", "direction", direction)
	return nil
}

func runSources(logger *log.Logger) error {
	db, closeDB, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := waitlist.NewWaitlistRepository(db).CountBySource(ctx)
	if err != nil {
		return err
	}

	title := cases.Title(language.English)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tSUBMISSIONS")

	var total int64
	for _, c := range counts {
		label := c.Source
		if label == "" {
			label = "unknown"
		}
		fmt.Fprintf(w, "%s\t%d\n", title.String(sourceLabel(label)), c.Total)
		total += c.Total
	}
	fmt.Fprintf(w, "%s\t%d\n", "Total", total)
	return w.Flush()
}

var sourceSeparators = strings.NewReplacer("-", " ", "_", " ")

// sourceLabel turns a source tag like "hero-cta" into "hero cta".
func sourceLabel(tag string) string {
	return sourceSeparators.Replace(tag)
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate [up]        Apply pending SQL migrations and exit")
	fmt.Println("  migrate down [n]    Roll back the last n migrations (default 1)")
	fmt.Println("  migrate version     Print the applied schema version")
	fmt.Println("  sources             Print waitlist submission counts per source")
	fmt.Println("  help                Show this message")
}
