package remote

import (
	"context"

	"github.com/GriffinCanCode/teveclub/internal/scraper"
	"github.com/GriffinCanCode/teveclub/internal/types"
)

// FetchCurrentFoodDrink asks the local status endpoint for the pet's food
// and drink icons. On failure the default icons are returned with the result.
func (c *Client) FetchCurrentFoodDrink(ctx context.Context) (types.FoodDrink, types.ActionResult) {
	fd := types.FoodDrink{FoodIcon: types.DefaultIcon, DrinkIcon: types.DefaultIcon}

	resp := c.transport.Status(ctx, types.EndpointCurrentFoodDrink)
	if !resp.TransportOK {
		return fd, c.finish("current_food_drink", types.TransportFailure("food and drink unavailable: "+resp.Message))
	}

	if resp.FoodIcon != "" {
		fd.FoodIcon = resp.FoodIcon
	}
	if resp.DrinkIcon != "" {
		fd.DrinkIcon = resp.DrinkIcon
	}
	return fd, c.finish("current_food_drink", types.Succeeded("food "+fd.FoodIcon+", drink "+fd.DrinkIcon))
}

// FetchCurrentTrick asks the local status endpoint which trick is being
// taught. An empty name means no active trick.
func (c *Client) FetchCurrentTrick(ctx context.Context) (string, types.ActionResult) {
	resp := c.transport.Status(ctx, types.EndpointCurrentTrick)
	if !resp.TransportOK {
		return "", c.finish("current_trick", types.TransportFailure("trick unavailable: "+resp.Message))
	}
	if resp.Trick == "" {
		return "", c.finish("current_trick", types.Succeeded("no active trick"))
	}
	return resp.Trick, c.finish("current_trick", types.Succeeded("current trick: "+resp.Trick))
}

func extractTrickOptions(body string) []string {
	return scraper.ExtractOptions(body, "tudomany")
}
