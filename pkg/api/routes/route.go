package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/borderhop/pkg/planner"
)

func RouteRouter(router fiber.Router, routePlanner *planner.Planner) {
	router.Get("/:origin/:destination", func(c *fiber.Ctx) error {
		return getRoutePlan(c, routePlanner)
	})
}

func getRoutePlan(c *fiber.Ctx, routePlanner *planner.Planner) error {
	origin := param(c, "origin")
	destination := param(c, "destination")

	plan, err := routePlanner.Plan(c.UserContext(), origin, destination)
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, groupsFor(c), plan)
}
