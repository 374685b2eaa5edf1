package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"vera/app/config"
	"vera/app/logger"
	"vera/app/repositories"
	"vera/app/routes"
	"vera/app/services"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const CliVersion = "1.0.0"

// exit is swapped out by tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the command line.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("vera version %s\n", CliVersion)
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := runServe(ctx, os.Args[2:], os.Stderr); err != nil {
			fmt.Printf("Error: %v\n", err)
			exit(1)
			return
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: vera <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [--config <file>] [--addr <host:port>]
                                 Run the board web server until interrupted.

Environment variables prefixed with VERA_ override configuration keys,
e.g. VERA_SERVER_ADDR=:9000 or VERA_LOG_LEVEL=debug.
`
	fmt.Println(helpText)
}

// runServe loads configuration, wires the board and serves it until ctx is done.
func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML or JSON config file")
	addr := fs.String("addr", "", "listen address, overrides server.addr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := repositories.Open(log)
	if err != nil {
		return err
	}
	defer db.Close()

	board := services.NewBoardService(
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
		log,
	)

	router, err := routes.SetupRoutes(board, cfg, log)
	if err != nil {
		return err
	}

	log.Info("starting vera",
		zap.String("version", CliVersion),
		zap.String("addr", cfg.Server.Addr))
	return routes.StartServer(ctx, cfg.Server.Addr, router, cfg.Server.ShutdownTimeout, log)
}
