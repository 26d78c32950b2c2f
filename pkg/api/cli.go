package api

import (
	"github.com/travigo/borderhop/pkg/config"
	"github.com/travigo/borderhop/pkg/planner"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the routing web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					services, err := planner.Setup(cfg)
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), services)
				},
			},
		},
	}
}
