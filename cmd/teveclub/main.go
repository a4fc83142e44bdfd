package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/GriffinCanCode/teveclub/cmd/teveclub/commands"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("teveclub", "Teveclub pet care bot.")
	app.UsageWriter(stdout).ErrorWriter(stderr)
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	autoCmd := commands.NewAutoCommand(rootCmd, app)
	actionCmd := commands.NewActionCommand(rootCmd, app)

	cmds := map[string]commands.Command{
		autoCmd.Name():   autoCmd,
		actionCmd.Name(): actionCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	level := "warn"
	if rootCmd.Debug {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Development: true, OutputPaths: []string{"stderr"}})
	if err != nil {
		return fmt.Errorf("could not create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	rootCmd.Logger = logger

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				if err := cmds[cmdName].Run(ctx); err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

func main() {
	ctx := context.Background()
	if err := Run(ctx, os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
