package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

type AutoCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	username string
	password string
}

// NewAutoCommand returns the auto command, run when no command is named.
func NewAutoCommand(rootCmd *RootCommand, app *kingpin.Application) *AutoCommand {
	c := &AutoCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("auto", "Log in, feed, learn, guess and log out.").Default()
	c.Cmd.Arg("username", "Teveclub user name.").Required().StringVar(&c.username)
	c.Cmd.Arg("password", "Teveclub password.").Required().StringVar(&c.password)

	return c
}

func (c AutoCommand) Name() string { return c.Cmd.FullCommand() }

func (c AutoCommand) Run(ctx context.Context) error {
	orch, err := c.rootCmd.Orchestrator(ctx)
	if err != nil {
		return err
	}

	p := NewPrinter(c.rootCmd.Stdout, c.rootCmd.NoColor)
	report := orch.StreamAutoSequence(ctx, types.Credentials{
		Username: c.username,
		Password: c.password,
	}, p.Step)
	p.Report(report)

	if report.Status == types.StatusFailure {
		return fmt.Errorf("auto run failed")
	}
	return nil
}
