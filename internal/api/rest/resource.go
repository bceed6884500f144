package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dtroode/hms-console/internal/model"
)

// Resource is a typed CRUD endpoint of the remote service. T is the entity
// read back, P the create/update body.
type Resource[T, P any] struct {
	client *Client
	path   string
}

func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	return list[T](ctx, r.client, r.path)
}

func (r *Resource[T, P]) Get(ctx context.Context, id int64) (T, error) {
	var env envelope[T]
	err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, &env)
	return env.Data, err
}

func (r *Resource[T, P]) Create(ctx context.Context, payload P) (T, error) {
	var env envelope[T]
	err := r.client.do(ctx, http.MethodPost, r.path, payload, &env)
	return env.Data, err
}

func (r *Resource[T, P]) Update(ctx context.Context, id int64, payload P) (T, error) {
	var env envelope[T]
	err := r.client.do(ctx, http.MethodPut, r.itemPath(id), payload, &env)
	return env.Data, err
}

func (r *Resource[T, P]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T, P]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

// RecordResource adds the per-patient listing the remote exposes for records.
type RecordResource struct {
	*Resource[model.MedicalRecord, model.RecordPayload]
}

func (r *RecordResource) ListByPatient(ctx context.Context, patientID int64) ([]model.MedicalRecord, error) {
	return list[model.MedicalRecord](ctx, r.client, fmt.Sprintf("/api/patients/%d/records", patientID))
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var env envelope[[]T]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}
