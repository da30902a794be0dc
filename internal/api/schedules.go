package api

import (
	"context"
	"fmt"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/transport"
)

// SchedulesAPI maps schedule verbs onto /schedules routes.
type SchedulesAPI struct {
	client *transport.Client
}

func NewSchedulesAPI(client *transport.Client) *SchedulesAPI {
	return &SchedulesAPI{client: client}
}

func (a *SchedulesAPI) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	path := "/schedules" + transport.BuildQuery(filter.Values())
	if err := a.client.Get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (a *SchedulesAPI) Create(ctx context.Context, payload models.CreateScheduleEntry) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	if err := a.client.Post(ctx, "/schedules", payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (a *SchedulesAPI) Update(ctx context.Context, id int64, payload models.UpdateScheduleEntry) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	if err := a.client.Patch(ctx, fmt.Sprintf("/schedules/%d", id), payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (a *SchedulesAPI) Delete(ctx context.Context, id int64) error {
	return a.client.Delete(ctx, fmt.Sprintf("/schedules/%d", id))
}
