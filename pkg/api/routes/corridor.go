package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/borderhop/pkg/corridor"
	"github.com/travigo/borderhop/pkg/ctdf"
	"github.com/travigo/borderhop/pkg/resolver"
)

type corridorResponse struct {
	Origin      *ctdf.Location `groups:"basic"`
	Destination *ctdf.Location `groups:"basic"`

	ThresholdDegrees float64         `groups:"basic"`
	Candidates       []ctdf.Location `groups:"basic"`
}

func CorridorRouter(router fiber.Router, locationResolver *resolver.Resolver, search *corridor.Search) {
	router.Get("/:origin/:destination", func(c *fiber.Ctx) error {
		return getCorridor(c, locationResolver, search)
	})
}

// getCorridor lists the stations the corridor search would probe, without
// probing any of them
func getCorridor(c *fiber.Ctx, locationResolver *resolver.Resolver, search *corridor.Search) error {
	origin, err := locationResolver.Resolve(c.UserContext(), param(c, "origin"))
	if err != nil {
		return sendError(c, err)
	}

	destination, err := locationResolver.Resolve(c.UserContext(), param(c, "destination"))
	if err != nil {
		return sendError(c, err)
	}

	candidates := search.Filter(origin, destination)
	if candidates == nil {
		candidates = []ctdf.Location{}
	}

	return sendReduced(c, groupsFor(c), &corridorResponse{
		Origin:           origin,
		Destination:      destination,
		ThresholdDegrees: search.ThresholdDegrees,
		Candidates:       candidates,
	})
}
