package planner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/borderhop/pkg/config"
	"github.com/travigo/borderhop/pkg/presenter"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Find a direct or cross-border connection between two places",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "origin place name (prompted for when omitted)",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "destination place name (prompted for when omitted)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "dump the full route plan after the result",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			services, err := Setup(cfg)
			if err != nil {
				return err
			}

			input := bufio.NewReader(os.Stdin)

			origin := c.String("from")
			if origin == "" {
				if origin, err = prompt(input, os.Stdout, "Where are you? "); err != nil {
					return err
				}
			}

			destination := c.String("to")
			if destination == "" {
				if destination, err = prompt(input, os.Stdout, "Where do you want to go to? "); err != nil {
					return err
				}
			}

			plan, err := services.Planner.Plan(context.Background(), origin, destination)
			if err != nil {
				return err
			}

			if err := presenter.Render(os.Stdout, plan); err != nil {
				return err
			}

			if c.Bool("debug") {
				pretty.Println(plan)
			}

			log.Debug().Str("session", plan.SessionID).Str("state", string(plan.State)).Msg("Session finished")

			return nil
		},
	}
}

func prompt(input *bufio.Reader, output io.Writer, question string) (string, error) {
	fmt.Fprint(output, question)

	answer, err := input.ReadString('\n')
	if err != nil && (err != io.EOF || answer == "") {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
