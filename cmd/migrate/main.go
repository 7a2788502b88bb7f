package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/migration"
	"github.com/shop/backend/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

// invocation is everything a command can touch
type invocation struct {
	args []string
	dir  string
	src  migration.Source
	m    *migration.Migrator
	log  *zap.Logger
}

type command struct {
	name    string
	usage   string
	summary string
	offline bool
	run     func(inv *invocation) error
}

var commands = []command{
	{name: "up", summary: "Apply all pending migrations", run: func(inv *invocation) error {
		return inv.m.Up()
	}},
	{name: "down", summary: "Roll back all migrations", run: func(inv *invocation) error {
		return inv.m.Down()
	}},
	{name: "step", usage: "<n>", summary: "Apply n migrations (negative rolls back)", run: func(inv *invocation) error {
		n, err := strconv.Atoi(inv.arg(0))
		if err != nil {
			return fmt.Errorf("step count %q: %w", inv.arg(0), err)
		}
		return inv.m.Steps(n)
	}},
	{name: "goto", usage: "<version>", summary: "Migrate to a specific version", run: func(inv *invocation) error {
		v, err := strconv.ParseUint(inv.arg(0), 10, 64)
		if err != nil {
			return fmt.Errorf("version %q: %w", inv.arg(0), err)
		}
		return inv.m.GoTo(uint(v))
	}},
	{name: "version", summary: "Show the applied version", run: showVersion},
	{name: "status", summary: "Show applied and pending migrations", run: showStatus},
	{name: "force", usage: "<version>", summary: "Mark a version as applied and clean", run: func(inv *invocation) error {
		v, err := strconv.Atoi(inv.arg(0))
		if err != nil {
			return fmt.Errorf("version %q: %w", inv.arg(0), err)
		}
		return inv.m.Force(v)
	}},
	{name: "drop", usage: "-confirm", summary: "Drop every table in the database", run: func(inv *invocation) error {
		if !slices.Contains(inv.args, "-confirm") && !slices.Contains(inv.args, "--confirm") {
			return errors.New("drop needs -confirm")
		}
		return inv.m.Drop()
	}},
	{name: "create", usage: "<name> [description]", summary: "Scaffold an up/down migration pair", offline: true, run: createPair},
	{name: "list", summary: "List available migrations", offline: true, run: listNames},
}

func main() {
	path := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}
	idx := slices.IndexFunc(commands, func(c command) bool { return c.name == args[0] })
	if idx < 0 {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	cmd := commands[idx]

	log, err := logger.New(&logger.Config{
		Level:      *level,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	inv := &invocation{args: args[1:], dir: *path, src: migration.FromFS(migrations.Files), log: log}
	if *path != "" {
		inv.src = migration.FromDir(*path)
	}
	if inv.dir == "" {
		inv.dir = defaultMigrationsPath
	}

	if err := execute(cmd, inv); err != nil {
		log.Fatal("Migration command failed", zap.String("command", cmd.name), zap.Error(err))
	}
}

func execute(cmd command, inv *invocation) error {
	inv.log.Info("Migration CLI started", zap.String("command", cmd.name), zap.Stringer("source", inv.src))
	if cmd.offline {
		return cmd.run(inv)
	}
	if strings.HasPrefix(cmd.usage, "<") && len(inv.args) == 0 {
		return fmt.Errorf("usage: migrate %s %s", cmd.name, cmd.usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	// the migrator owns db from here on
	inv.m, err = migration.New(db, inv.src, inv.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := inv.m.Close(); err != nil {
			inv.log.Error("Failed to close migrator", zap.Error(err))
		}
	}()
	return cmd.run(inv)
}

func (inv *invocation) arg(i int) string {
	if i < len(inv.args) {
		return inv.args[i]
	}
	return ""
}

func showVersion(inv *invocation) error {
	version, dirty, err := inv.m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		inv.log.Info("No migrations applied")
		return nil
	}
	inv.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func showStatus(inv *invocation) error {
	status, err := inv.m.Status()
	if err != nil {
		return err
	}
	inv.log.Info("Migration status",
		zap.Uint("current", status.Current),
		zap.Uint("latest", status.Latest),
		zap.Bool("dirty", status.Dirty),
		zap.Int("pending", len(status.Pending)),
	)
	for _, name := range status.Pending {
		fmt.Println("  pending:", name)
	}
	return nil
}

func createPair(inv *invocation) error {
	if len(inv.args) == 0 {
		return errors.New("usage: migrate create <name> [description]")
	}
	p, err := migration.CreateMigration(inv.dir, inv.arg(0), strings.Join(inv.args[1:], " "))
	if err != nil {
		return err
	}
	inv.log.Info("Migration created",
		zap.String("version", p.Version),
		zap.String("up_file", p.UpPath),
		zap.String("down_file", p.DownPath),
	)
	return nil
}

func listNames(inv *invocation) error {
	names, err := inv.src.Migrations()
	if err != nil {
		return err
	}
	inv.log.Info("Available migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
	return nil
}

func printUsage() {
	var b strings.Builder
	b.WriteString("Shop database migrations\n\nUsage:\n  migrate [flags] <command> [arguments]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-28s %s\n", strings.TrimSpace(c.name+" "+c.usage), c.summary)
	}
	b.WriteString("\nFlags:\n")
	flag.CommandLine.SetOutput(&b)
	flag.PrintDefaults()
	b.WriteString("\nThe database is configured through config.toml or SHOP_DATABASE_* variables.\n")
	fmt.Fprint(os.Stderr, b.String())
}
