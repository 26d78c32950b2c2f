package routes

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/borderhop/pkg/httpclient"
	"github.com/travigo/borderhop/pkg/planner"
	"github.com/travigo/borderhop/pkg/resolver"
)

// errorStatus maps a session error onto the response status. Upstream
// network failures take precedence over the not found they caused.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, httpclient.ErrNetworkFailure):
		return fiber.StatusBadGateway
	case errors.Is(err, resolver.ErrLocationNotFound),
		errors.Is(err, planner.ErrOriginUnresolved),
		errors.Is(err, planner.ErrDestinationUnresolved):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	c.Status(errorStatus(err))
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func sendReduced(c *fiber.Ctx, groups []string, value interface{}) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)

	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error":    "Sheriff could not reduce the response",
			"detailed": err.Error(),
		})
	}

	return c.JSON(reduced)
}

func groupsFor(c *fiber.Ctx) []string {
	if c.QueryBool("detailed", false) {
		return []string{"basic", "detailed"}
	}

	return []string{"basic"}
}

// param returns the unescaped path parameter so place names may contain
// spaces and non ASCII characters
func param(c *fiber.Ctx, name string) string {
	value := c.Params(name)

	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}

	return value
}
