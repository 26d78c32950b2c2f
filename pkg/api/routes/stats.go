package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/borderhop/pkg/api/stats"
)

func StatsRouter(router fiber.Router, recordsStats *stats.RecordsStats) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(recordsStats)
	})
}
