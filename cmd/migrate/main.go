// cmd/migrate applies the embedded schema migrations on demand.
//
//	migrate [-dsn postgres://...] up|down|status
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/PavelNikolaichev/LangLearn.Backend/internal/config"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/infrastructure/db/postgres"
	"github.com/PavelNikolaichev/LangLearn.Backend/internal/logger"
)

const commandTimeout = 2 * time.Minute

type migrator struct {
	open     func(dsn string, debug bool) (*sql.DB, error)
	commands map[string]func(ctx context.Context, db *sql.DB) error
}

func defaultMigrator() migrator {
	return migrator{
		open: config.NewDB,
		commands: map[string]func(ctx context.Context, db *sql.DB) error{
			"up":     postgres.Migrate,
			"down":   postgres.Rollback,
			"status": postgres.Status,
		},
	}
}

func (m migrator) run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dsn := fs.String("dsn", os.Getenv("DB_ADDR"), "Postgres DSN (defaults to $DB_ADDR)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: migrate [-dsn DSN] up|down|status")
		return 2
	}
	cmd, ok := m.commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		return 2
	}
	if *dsn == "" {
		fmt.Fprintln(stderr, "missing DSN: set DB_ADDR or pass -dsn")
		return 2
	}

	db, err := m.open(*dsn, false)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("db connect failed")
		return 1
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := cmd(ctx, db); err != nil {
		logger.Logger.Error().Err(err).Str("command", fs.Arg(0)).Msg("migration failed")
		return 1
	}
	logger.Logger.Info().Str("command", fs.Arg(0)).Msg("migration done")
	return 0
}

func main() {
	_ = godotenv.Load()
	logger.Init()
	os.Exit(defaultMigrator().run(os.Args[1:], os.Stderr))
}
