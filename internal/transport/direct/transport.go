// Package direct implements the remote action transport in-process, calling
// teveclub.hu through an upstream.Client without a proxy server in between.
package direct

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/teveclub/internal/types"
	"github.com/GriffinCanCode/teveclub/internal/upstream"
)

// Upstream is the part of upstream.Client the transport needs
type Upstream interface {
	Forward(ctx context.Context, req types.ProxyRequest) (*upstream.Page, error)
	FoodDrink(ctx context.Context) (types.FoodDrink, error)
	CurrentTrick(ctx context.Context) (string, error)
}

// Transport adapts an upstream client to the remote action transport
type Transport struct {
	upstream Upstream
}

// New creates a Transport
func New(u Upstream) *Transport {
	return &Transport{upstream: u}
}

// Proxy forwards req; any HTTP answer counts as a completed transport call
func (t *Transport) Proxy(ctx context.Context, req types.ProxyRequest) types.ProxyResponse {
	page, err := t.upstream.Forward(ctx, req)
	if err != nil {
		return types.ProxyResponse{TransportOK: false, Message: "Network error: " + err.Error()}
	}
	return types.ProxyResponse{TransportOK: true, Body: page.Body}
}

// Status reads the pet's status straight from the site pages
func (t *Transport) Status(ctx context.Context, endpoint string) types.StatusResponse {
	switch endpoint {
	case types.EndpointCurrentFoodDrink:
		fd, err := t.upstream.FoodDrink(ctx)
		if err != nil {
			return types.StatusResponse{TransportOK: false, Message: "Network error: " + err.Error()}
		}
		return types.StatusResponse{TransportOK: true, FoodIcon: fd.FoodIcon, DrinkIcon: fd.DrinkIcon}
	case types.EndpointCurrentTrick:
		trick, err := t.upstream.CurrentTrick(ctx)
		if err != nil {
			return types.StatusResponse{TransportOK: false, Message: "Network error: " + err.Error()}
		}
		return types.StatusResponse{TransportOK: true, Trick: trick}
	default:
		return types.StatusResponse{TransportOK: false, Message: fmt.Sprintf("unknown status endpoint %q", endpoint)}
	}
}
