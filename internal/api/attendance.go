package api

import (
	"context"
	"fmt"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/transport"
)

// AttendanceAPI maps attendance verbs onto /attendance routes.
//
// Delete deliberately uses the /api/attendance prefix: the service exposes
// it there and nowhere else, unlike the sibling read/update routes. Kept as
// two distinct documented routes rather than unified.
type AttendanceAPI struct {
	client *transport.Client
}

func NewAttendanceAPI(client *transport.Client) *AttendanceAPI {
	return &AttendanceAPI{client: client}
}

func (a *AttendanceAPI) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	path := "/attendance" + transport.BuildQuery(filter.Values())
	if err := a.client.Get(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *AttendanceAPI) Create(ctx context.Context, payload models.CreateAttendance) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := a.client.Post(ctx, "/attendance", payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (a *AttendanceAPI) Update(ctx context.Context, id int64, payload models.UpdateAttendance) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := a.client.Patch(ctx, fmt.Sprintf("/attendance/%d", id), payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (a *AttendanceAPI) Delete(ctx context.Context, id int64) error {
	return a.client.Delete(ctx, fmt.Sprintf("/api/attendance/%d", id))
}
