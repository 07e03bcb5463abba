// Package geo is the client for the external geography lookup service.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"procserve/internal/core/ports"
)

// Client implements ports.GeographyService against the geography HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a geography client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type stateDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cityDTO struct {
	ID      string `json:"id"`
	StateID string `json:"stateId"`
	Name    string `json:"name"`
}

// StatesList fetches all known states.
func (c *Client) StatesList(ctx context.Context) ([]ports.State, error) {
	var dtos []stateDTO
	if err := c.getJSON(ctx, c.baseURL+"/states", &dtos); err != nil {
		return nil, err
	}

	states := make([]ports.State, 0, len(dtos))
	for _, dto := range dtos {
		states = append(states, ports.State{ID: dto.ID, Name: dto.Name})
	}
	return states, nil
}

// CitiesByState fetches the cities of one state.
func (c *Client) CitiesByState(ctx context.Context, stateID string) ([]ports.City, error) {
	var dtos []cityDTO
	url := fmt.Sprintf("%s/states/%s/cities", c.baseURL, stateID)
	if err := c.getJSON(ctx, url, &dtos); err != nil {
		return nil, err
	}

	cities := make([]ports.City, 0, len(dtos))
	for _, dto := range dtos {
		cities = append(cities, ports.City{ID: dto.ID, StateID: dto.StateID, Name: dto.Name})
	}
	return cities, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geography service returned %d for %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
