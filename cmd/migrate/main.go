package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/N08I40K/schedule-parser-next/internal/config"
	"github.com/N08I40K/schedule-parser-next/migrations"

	_ "github.com/lib/pq"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if err := run(command); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(command string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Infrastructure.Db.Dsn == "" {
		return fmt.Errorf("DB_DSN is not set")
	}

	db, err := sql.Open("postgres", cfg.Infrastructure.Db.Dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	switch command {
	case "up":
		return migrations.Up(db)
	case "down":
		return migrations.Down(db)
	case "status":
		return migrations.Status(db)
	default:
		return fmt.Errorf("unknown command %q, expected up|down|status", command)
	}
}
