package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/borderhop/pkg/api/routes"
	"github.com/travigo/borderhop/pkg/api/stats"
	"github.com/travigo/borderhop/pkg/planner"
)

func NewApp(services *planner.Services) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.RouteRouter(group.Group("/route"), services.Planner)
	routes.CorridorRouter(group.Group("/corridor"), services.Resolver, services.Corridor)

	routes.StatsRouter(group.Group("/stats"), stats.Compute(services))

	return webApp
}

func SetupServer(listen string, services *planner.Services) error {
	return NewApp(services).Listen(listen)
}
