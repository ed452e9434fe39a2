package fpl

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/tempad/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetBootstrapStatic(ctx context.Context) (*models.BootstrapStatic, error) {
	var bootstrap models.BootstrapStatic
	if err := a.client.Get(ctx, "/bootstrap-static/", &bootstrap); err != nil {
		return nil, fmt.Errorf("fetching bootstrap static: %w", err)
	}
	return &bootstrap, nil
}

func (a *API) GetManagerEntry(ctx context.Context, managerID int) (*models.EntryResponse, error) {
	var entry models.EntryResponse
	endpoint := fmt.Sprintf("/entry/%d/", managerID)
	if err := a.client.Get(ctx, endpoint, &entry); err != nil {
		return nil, fmt.Errorf("fetching manager %d: %w", managerID, err)
	}
	return &entry, nil
}

func (a *API) GetPicks(ctx context.Context, managerID, gameweek int) (*models.PicksResponse, error) {
	var picks models.PicksResponse
	endpoint := fmt.Sprintf("/entry/%d/event/%d/picks/", managerID, gameweek)
	if err := a.client.Get(ctx, endpoint, &picks); err != nil {
		return nil, fmt.Errorf("fetching picks for manager %d gameweek %d: %w", managerID, gameweek, err)
	}
	return &picks, nil
}

func (a *API) GetElementSummary(ctx context.Context, playerID int) (*models.ElementSummary, error) {
	var summary models.ElementSummary
	endpoint := fmt.Sprintf("/element-summary/%d/", playerID)
	if err := a.client.Get(ctx, endpoint, &summary); err != nil {
		return nil, fmt.Errorf("fetching element summary %d: %w", playerID, err)
	}
	return &summary, nil
}
