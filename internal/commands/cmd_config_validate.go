package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/todos/internal/core/config"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "todos config validate [options]",
				Description: "Validates the configuration file, the data directory, and the journal file location.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResult struct {
	Valid    bool                       `json:"valid"`
	Errors   []validationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	result := validationResult{Warnings: cfg.Warnings()}

	if err := cfg.ValidateDeep(cmd.flags.ConfigPath); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
		}
	}
	result.Valid = len(result.Errors) == 0

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		cmd.outputText(c, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, result validationResult) {
	w := c.Root().Writer

	for _, warn := range result.Warnings {
		line := fmt.Sprintf("%s: %s", warn.Category, warn.Message)
		_, _ = fmt.Fprintln(w, styles.InputPromptStyle.Render("! "+line))
	}

	for _, e := range result.Errors {
		_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("✗ %s: %s", e.Field, e.Message)))
	}

	if result.Valid {
		_, _ = fmt.Fprintln(w, styles.CheckStyle.Render("✓ Configuration is valid"))
		return
	}
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
