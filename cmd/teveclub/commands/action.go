package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// Actions the action command accepts
var Actions = []string{"feed", "learn", "guess", "food", "drink", "logout", "status"}

type ActionCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	action   string
	username string
	password string
	id       string
}

// NewActionCommand returns the action command.
func NewActionCommand(rootCmd *RootCommand, app *kingpin.Application) *ActionCommand {
	c := &ActionCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("action", "Log in and run a single action.")
	c.Cmd.Arg("action", "Action to run.").Required().EnumVar(&c.action, Actions...)
	c.Cmd.Arg("username", "Teveclub user name.").Required().StringVar(&c.username)
	c.Cmd.Arg("password", "Teveclub password.").Required().StringVar(&c.password)
	c.Cmd.Flag("id", "Food or drink id for the food and drink actions.").StringVar(&c.id)

	return c
}

func (c ActionCommand) Name() string { return c.Cmd.FullCommand() }

func (c ActionCommand) Run(ctx context.Context) error {
	orch, err := c.rootCmd.Orchestrator(ctx)
	if err != nil {
		return err
	}

	p := NewPrinter(c.rootCmd.Stdout, c.rootCmd.NoColor)

	login := orch.Login(ctx, c.username, c.password)
	p.Result("login", login)
	if !login.OK() {
		return fmt.Errorf("login failed")
	}

	var result types.ActionResult
	switch c.action {
	case "feed":
		result = orch.Feed(ctx)
	case "learn":
		result = orch.Learn(ctx)
	case "guess":
		result = orch.Guess(ctx)
	case "food":
		result = orch.SetFood(ctx, c.id)
	case "drink":
		result = orch.SetDrink(ctx, c.id)
	case "logout":
		result = orch.Logout(ctx)
	case "status":
		_, result = orch.CurrentFoodDrink(ctx)
		if result.OK() {
			p.Result("status", result)
			_, result = orch.CurrentTrick(ctx)
		}
	}
	p.Result(c.action, result)

	if c.action != "logout" {
		p.Result("logout", orch.Logout(ctx))
	}

	if !result.OK() {
		return fmt.Errorf("%s failed", c.action)
	}
	return nil
}
