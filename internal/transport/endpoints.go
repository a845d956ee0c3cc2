package transport

import (
	"context"
	"fmt"
)

// AgentResponse is the parsed /my/agent payload.
type AgentResponse struct {
	AccountID       string `json:"accountId"`
	Symbol          string `json:"symbol"`
	Headquarters    string `json:"headquarters"`
	Credits         int    `json:"credits"`
	StartingFaction string `json:"startingFaction"`
	ShipCount       int    `json:"shipCount"`
}

func (c *Client) GetAgent(ctx context.Context) (*AgentResponse, error) {
	var envelope struct {
		Data AgentResponse `json:"data"`
	}
	if err := c.get(ctx, "/my/agent", &envelope); err != nil {
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return &envelope.Data, nil
}

type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type SystemResponse struct {
	Symbol       string             `json:"symbol"`
	SectorSymbol string             `json:"sectorSymbol"`
	Type         string             `json:"type"`
	X            float64            `json:"x"`
	Y            float64            `json:"y"`
	Factions     []struct{ Symbol string `json:"symbol"` } `json:"factions"`
	Waypoints    []WaypointRefResponse `json:"waypoints"`
}

type SystemsPage struct {
	Data []SystemResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

func (c *Client) ListSystems(ctx context.Context, page, limit int) (*SystemsPage, error) {
	path := fmt.Sprintf("/systems?page=%d&limit=%d", page, limit)
	var resp SystemsPage
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list systems: %w", err)
	}
	return &resp, nil
}

type WaypointRefResponse struct {
	Symbol   string   `json:"symbol"`
	Type     string   `json:"type"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Orbitals []struct{ Symbol string `json:"symbol"` } `json:"orbitals"`
	Orbits   string   `json:"orbits"`
}

type WaypointsPage struct {
	Data []WaypointDetailResponse `json:"data"`
	Meta PageMeta                 `json:"meta"`
}

func (c *Client) ListWaypoints(ctx context.Context, systemSymbol string, page, limit int) (*WaypointsPage, error) {
	path := fmt.Sprintf("/systems/%s/waypoints?page=%d&limit=%d", systemSymbol, page, limit)
	var resp WaypointsPage
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list waypoints: %w", err)
	}
	return &resp, nil
}

type WaypointDetailResponse struct {
	Symbol            string   `json:"symbol"`
	Type              string   `json:"type"`
	X                 float64  `json:"x"`
	Y                 float64  `json:"y"`
	Orbitals          []struct{ Symbol string `json:"symbol"` } `json:"orbitals"`
	Orbits            string   `json:"orbits"`
	Traits            []struct {
		Symbol string `json:"symbol"`
	} `json:"traits"`
	Faction           struct{ Symbol string `json:"symbol"` } `json:"faction"`
	Chart             *struct{ SubmittedBy string `json:"submittedBy"` } `json:"chart"`
	IsUnderConstruction bool `json:"isUnderConstruction"`
}

func (c *Client) GetWaypoint(ctx context.Context, systemSymbol, waypointSymbol string) (*WaypointDetailResponse, error) {
	path := fmt.Sprintf("/systems/%s/waypoints/%s", systemSymbol, waypointSymbol)
	var envelope struct {
		Data WaypointDetailResponse `json:"data"`
	}
	if err := c.get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("get waypoint: %w", err)
	}
	return &envelope.Data, nil
}

type TradeGoodResponse struct {
	Symbol        string `json:"symbol"`
	Supply        string `json:"supply"`
	Activity      string `json:"activity"`
	PurchasePrice int    `json:"purchasePrice"`
	SellPrice     int    `json:"sellPrice"`
	TradeVolume   int    `json:"tradeVolume"`
}

type MarketResponse struct {
	Symbol     string              `json:"symbol"`
	TradeGoods []TradeGoodResponse `json:"tradeGoods"`
}

func (c *Client) GetMarket(ctx context.Context, systemSymbol, waypointSymbol string) (*MarketResponse, error) {
	path := fmt.Sprintf("/systems/%s/waypoints/%s/market", systemSymbol, waypointSymbol)
	var envelope struct {
		Data MarketResponse `json:"data"`
	}
	if err := c.get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("get market: %w", err)
	}
	return &envelope.Data, nil
}

type ShipyardShipResponse struct {
	Type          string `json:"type"`
	PurchasePrice int    `json:"purchasePrice"`
}

type ShipyardResponse struct {
	Symbol string                 `json:"symbol"`
	Ships  []ShipyardShipResponse `json:"ships"`
}

func (c *Client) GetShipyard(ctx context.Context, systemSymbol, waypointSymbol string) (*ShipyardResponse, error) {
	path := fmt.Sprintf("/systems/%s/waypoints/%s/shipyard", systemSymbol, waypointSymbol)
	var envelope struct {
		Data ShipyardResponse `json:"data"`
	}
	if err := c.get(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("get shipyard: %w", err)
	}
	return &envelope.Data, nil
}

type CargoItemResponse struct {
	Symbol string `json:"symbol"`
	Units  int    `json:"units"`
}

type ShipResponse struct {
	Symbol string `json:"symbol"`
	Nav    struct {
		SystemSymbol   string `json:"systemSymbol"`
		WaypointSymbol string `json:"waypointSymbol"`
		Status         string `json:"status"`
		FlightMode     string `json:"flightMode"`
		Route          *struct {
			Origin        struct{ Symbol string `json:"symbol"` } `json:"origin"`
			Destination   struct{ Symbol string `json:"symbol"` } `json:"destination"`
			DepartureTime string `json:"departureTime"`
			Arrival       string `json:"arrival"`
		} `json:"route"`
	} `json:"nav"`
	Fuel struct {
		Current  int `json:"current"`
		Capacity int `json:"capacity"`
	} `json:"fuel"`
	Cargo struct {
		Capacity  int                 `json:"capacity"`
		Units     int                 `json:"units"`
		Inventory []CargoItemResponse `json:"inventory"`
	} `json:"cargo"`
	Engine struct {
		Speed int `json:"speed"`
	} `json:"engine"`
	Registration struct {
		Role string `json:"role"`
	} `json:"registration"`
	Cooldown struct {
		TotalSeconds     int    `json:"totalSeconds"`
		RemainingSeconds int    `json:"remainingSeconds"`
		Expiration       string `json:"expiration"`
	} `json:"cooldown"`
}

func (c *Client) GetShip(ctx context.Context, symbol string) (*ShipResponse, error) {
	var envelope struct {
		Data ShipResponse `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/my/ships/%s", symbol), &envelope); err != nil {
		return nil, fmt.Errorf("get ship: %w", err)
	}
	return &envelope.Data, nil
}

type ShipsPage struct {
	Data []ShipResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

func (c *Client) ListShips(ctx context.Context, page, limit int) (*ShipsPage, error) {
	path := fmt.Sprintf("/my/ships?page=%d&limit=%d", page, limit)
	var resp ShipsPage
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	return &resp, nil
}

type PurchaseShipResponse struct {
	Ship       ShipResponse `json:"ship"`
	Agent      AgentResponse `json:"agent"`
	Transaction struct {
		TotalPrice int `json:"totalPrice"`
	} `json:"transaction"`
}

func (c *Client) PurchaseShip(ctx context.Context, shipType, waypointSymbol string) (*PurchaseShipResponse, error) {
	body := map[string]string{"shipType": shipType, "waypointSymbol": waypointSymbol}
	var envelope struct {
		Data PurchaseShipResponse `json:"data"`
	}
	if err := c.post(ctx, "/my/ships", body, &envelope); err != nil {
		return nil, fmt.Errorf("purchase ship: %w", err)
	}
	return &envelope.Data, nil
}

type NavResponse struct {
	Nav struct {
		SystemSymbol   string `json:"systemSymbol"`
		WaypointSymbol string `json:"waypointSymbol"`
		Status         string `json:"status"`
		FlightMode     string `json:"flightMode"`
	} `json:"nav"`
}

func (c *Client) OrbitShip(ctx context.Context, symbol string) (*NavResponse, error) {
	var envelope struct {
		Data NavResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/orbit", symbol), map[string]any{}, &envelope); err != nil {
		return nil, fmt.Errorf("orbit ship: %w", err)
	}
	return &envelope.Data, nil
}

func (c *Client) DockShip(ctx context.Context, symbol string) (*NavResponse, error) {
	var envelope struct {
		Data NavResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/dock", symbol), map[string]any{}, &envelope); err != nil {
		return nil, fmt.Errorf("dock ship: %w", err)
	}
	return &envelope.Data, nil
}

type NavigateResponse struct {
	Fuel struct {
		Current  int `json:"current"`
		Capacity int `json:"capacity"`
	} `json:"fuel"`
	Nav struct {
		WaypointSymbol string `json:"waypointSymbol"`
		Status         string `json:"status"`
		Route          struct {
			DepartureTime string `json:"departureTime"`
			Arrival       string `json:"arrival"`
		} `json:"route"`
	} `json:"nav"`
}

func (c *Client) NavigateShip(ctx context.Context, symbol, destination string) (*NavigateResponse, error) {
	body := map[string]string{"waypointSymbol": destination}
	var envelope struct {
		Data NavigateResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/navigate", symbol), body, &envelope); err != nil {
		return nil, fmt.Errorf("navigate ship: %w", err)
	}
	return &envelope.Data, nil
}

func (c *Client) SetFlightMode(ctx context.Context, symbol, flightMode string) (*NavResponse, error) {
	body := map[string]string{"flightMode": flightMode}
	var envelope struct {
		Data NavResponse `json:"data"`
	}
	if err := c.patch(ctx, fmt.Sprintf("/my/ships/%s/nav", symbol), body, &envelope); err != nil {
		return nil, fmt.Errorf("set flight mode: %w", err)
	}
	return &envelope.Data, nil
}

type ExtractionResponse struct {
	Extraction struct {
		Yield struct {
			Symbol string `json:"symbol"`
			Units  int    `json:"units"`
		} `json:"yield"`
	} `json:"extraction"`
	Cooldown struct {
		TotalSeconds     int    `json:"totalSeconds"`
		RemainingSeconds int    `json:"remainingSeconds"`
		Expiration       string `json:"expiration"`
	} `json:"cooldown"`
	Cargo struct {
		Capacity  int                 `json:"capacity"`
		Units     int                 `json:"units"`
		Inventory []CargoItemResponse `json:"inventory"`
	} `json:"cargo"`
}

func (c *Client) ExtractResources(ctx context.Context, symbol string) (*ExtractionResponse, error) {
	var envelope struct {
		Data ExtractionResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/extract", symbol), map[string]any{}, &envelope); err != nil {
		return nil, fmt.Errorf("extract resources: %w", err)
	}
	return &envelope.Data, nil
}

type TransactionResponse struct {
	Units      int `json:"units"`
	PricePerUnit int `json:"pricePerUnit"`
	TotalPrice int `json:"totalPrice"`
}

type TradeResponse struct {
	Agent       AgentResponse       `json:"agent"`
	Cargo       struct {
		Capacity  int                 `json:"capacity"`
		Units     int                 `json:"units"`
		Inventory []CargoItemResponse `json:"inventory"`
	} `json:"cargo"`
	Transaction TransactionResponse `json:"transaction"`
}

func (c *Client) SellCargo(ctx context.Context, symbol, good string, units int) (*TradeResponse, error) {
	body := map[string]any{"symbol": good, "units": units}
	var envelope struct {
		Data TradeResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/sell", symbol), body, &envelope); err != nil {
		return nil, fmt.Errorf("sell cargo: %w", err)
	}
	return &envelope.Data, nil
}

func (c *Client) PurchaseCargo(ctx context.Context, symbol, good string, units int) (*TradeResponse, error) {
	body := map[string]any{"symbol": good, "units": units}
	var envelope struct {
		Data TradeResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/purchase", symbol), body, &envelope); err != nil {
		return nil, fmt.Errorf("purchase cargo: %w", err)
	}
	return &envelope.Data, nil
}

func (c *Client) JettisonCargo(ctx context.Context, symbol, good string, units int) error {
	body := map[string]any{"symbol": good, "units": units}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/jettison", symbol), body, nil); err != nil {
		return fmt.Errorf("jettison cargo: %w", err)
	}
	return nil
}

type RefuelResponse struct {
	Agent       AgentResponse `json:"agent"`
	Fuel        struct {
		Current  int `json:"current"`
		Capacity int `json:"capacity"`
	} `json:"fuel"`
	Transaction TransactionResponse `json:"transaction"`
}

func (c *Client) RefuelShip(ctx context.Context, symbol string, units *int) (*RefuelResponse, error) {
	body := map[string]any{}
	if units != nil {
		body["units"] = *units
	}
	var envelope struct {
		Data RefuelResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/refuel", symbol), body, &envelope); err != nil {
		return nil, fmt.Errorf("refuel ship: %w", err)
	}
	return &envelope.Data, nil
}

type CargoResponse struct {
	Capacity  int                 `json:"capacity"`
	Units     int                 `json:"units"`
	Inventory []CargoItemResponse `json:"inventory"`
}

type WarpJumpResponse struct {
	Fuel struct {
		Current  int `json:"current"`
		Capacity int `json:"capacity"`
	} `json:"fuel"`
	Nav struct {
		WaypointSymbol string `json:"waypointSymbol"`
		Status         string `json:"status"`
		Route          struct {
			DepartureTime string `json:"departureTime"`
			Arrival       string `json:"arrival"`
		} `json:"route"`
	} `json:"nav"`
}

// WarpShip moves a ship to a waypoint in a different system. Unlike
// navigate, it is only valid while the ship is already in transit speed
// range of a warp drive; the executor falls back to JumpShip on failure.
func (c *Client) WarpShip(ctx context.Context, symbol, destination string) (*WarpJumpResponse, error) {
	body := map[string]string{"waypointSymbol": destination}
	var envelope struct {
		Data WarpJumpResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/warp", symbol), body, &envelope); err != nil {
		return nil, fmt.Errorf("warp ship: %w", err)
	}
	return &envelope.Data, nil
}

type JumpResponse struct {
	Nav struct {
		WaypointSymbol string `json:"waypointSymbol"`
		Status         string `json:"status"`
	} `json:"nav"`
	Cooldown struct {
		TotalSeconds     int    `json:"totalSeconds"`
		RemainingSeconds int    `json:"remainingSeconds"`
		Expiration       string `json:"expiration"`
	} `json:"cooldown"`
}

// JumpShip moves a ship to a waypoint with a jump gate, consuming a
// cooldown instead of fuel.
func (c *Client) JumpShip(ctx context.Context, symbol, destination string) (*JumpResponse, error) {
	body := map[string]string{"waypointSymbol": destination}
	var envelope struct {
		Data JumpResponse `json:"data"`
	}
	if err := c.post(ctx, fmt.Sprintf("/my/ships/%s/jump", symbol), body, &envelope); err != nil {
		return nil, fmt.Errorf("jump ship: %w", err)
	}
	return &envelope.Data, nil
}

func (c *Client) GetCargo(ctx context.Context, symbol string) (*CargoResponse, error) {
	var envelope struct {
		Data CargoResponse `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/my/ships/%s/cargo", symbol), &envelope); err != nil {
		return nil, fmt.Errorf("get cargo: %w", err)
	}
	return &envelope.Data, nil
}
