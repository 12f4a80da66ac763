// Package analytics wraps the productivity analytics endpoint.
package analytics

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskbloom/taskbloom/internal/apiclient"
	"github.com/taskbloom/taskbloom/internal/model"
)

// Service fetches analytics data
type Service struct {
	api    *apiclient.Client
	logger *slog.Logger
}

// New creates an analytics service
func New(api *apiclient.Client, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Fetch retrieves the analytics payload. The endpoint wraps its data in a
// {success, data, message} envelope; an unsuccessful envelope is surfaced as
// an error with the server's message.
func (s *Service) Fetch(ctx context.Context) (*model.Analytics, error) {
	var resp struct {
		Success bool             `json:"success"`
		Data    *model.Analytics `json:"data"`
		Message string           `json:"message,omitempty"`
	}
	if err := s.api.Get(ctx, "/api/analytics", &resp); err != nil {
		s.logger.Warn("failed to fetch analytics", slog.String("error", err.Error()))
		return nil, err
	}

	if !resp.Success || resp.Data == nil {
		msg := resp.Message
		if msg == "" {
			msg = "Failed to fetch analytics data"
		}
		return nil, errors.New(msg)
	}

	return resp.Data, nil
}
