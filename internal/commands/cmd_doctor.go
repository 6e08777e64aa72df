package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/todos/internal/core/doctor"
	"github.com/colonyops/todos/internal/core/styles"
	"github.com/colonyops/todos/internal/todos"
	"github.com/colonyops/todos/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type DoctorCmd struct {
	flags  *Flags
	app    *todos.App
	format string
}

// NewDoctorCmd creates a new doctor command.
func NewDoctorCmd(flags *Flags, app *todos.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

// Register adds the doctor command to the application.
func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on the configuration and journal",
		UsageText:   "todos doctor [options]",
		Description: "Validates the configuration, reads every journal entry, and checks database integrity.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	var results []doctor.Result
	if cmd.flags.Config.Validate() != nil {
		// the journal is not opened for an invalid config
		results = doctor.RunAll(ctx, []doctor.Check{
			doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
		})
	} else {
		results = cmd.app.RunChecks(ctx, cmd.flags.ConfigPath)
	}

	if cmd.format == "json" {
		if err := cmd.outputJSON(c, results); err != nil {
			return err
		}
	} else {
		cmd.outputText(c, results)
	}

	if _, _, failed := doctor.Summary(results); failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
}

func (cmd *DoctorCmd) outputText(c *cli.Command, results []doctor.Result) {
	w := c.Root().Writer
	divider := styles.HelpStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w, styles.TitleStyle.Render("Todos Doctor"))
	_, _ = fmt.Fprintln(w, divider)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, result.Name)

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.HelpStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.CheckStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.InputPromptStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.CheckStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.InputPromptStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
}
