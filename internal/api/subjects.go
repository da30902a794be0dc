package api

import (
	"context"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/transport"
)

// SubjectsAPI lists the taught disciplines.
type SubjectsAPI struct {
	client *transport.Client
}

func NewSubjectsAPI(client *transport.Client) *SubjectsAPI {
	return &SubjectsAPI{client: client}
}

func (a *SubjectsAPI) List(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := a.client.Get(ctx, "/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}
