package types

import "net/http"

// ProxyRequest describes one call the proxy forwards to the remote site
type ProxyRequest struct {
	TargetURL string            `json:"url"`
	Method    string            `json:"method"`
	Form      map[string]string `json:"data,omitempty"`
}

// NormalizedMethod returns the upper-case method, GET when unset
func (r ProxyRequest) NormalizedMethod() string {
	switch r.Method {
	case "", "get", "GET":
		return http.MethodGet
	case "post", "POST":
		return http.MethodPost
	default:
		return r.Method
	}
}

// ProxyResponse is what the proxy hands back.
// TransportOK=false means the proxy itself failed, regardless of Body.
type ProxyResponse struct {
	TransportOK bool
	Body        string
	Message     string
}

// StatusResponse is the answer of a local status endpoint
type StatusResponse struct {
	TransportOK bool
	FoodIcon    string
	DrinkIcon   string
	Trick       string
	Message     string
}

// DefaultIcon is shown when the current food or drink is unknown
const DefaultIcon = "default.gif"

// FoodDrink is the pet's current food and drink preference
type FoodDrink struct {
	FoodIcon  string `json:"foodIcon"`
	DrinkIcon string `json:"drinkIcon"`
}

// Status endpoint names, relative to the local API root
const (
	EndpointCurrentFoodDrink = "current-food-drink"
	EndpointCurrentTrick     = "current-trick"
)
