package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/complog/internal/api/models"
)

func (s *Server) registerSystemdRoutes() {
	if s.options.Systemd == nil || s.options.SystemdUnit == "" {
		return
	}
	unit := s.options.SystemdUnit

	huma.Register(s.api, huma.Operation{
		OperationID: "get-unit-status",
		Method:      http.MethodGet,
		Path:        "/api/systemd/status",
		Summary:     "Unit Status",
		Description: "Get the systemd ActiveState of the unit running complog",
		Tags:        []string{"systemd"},
		Security:    withAuth(),
		Errors:      []int{401, 500},
	}, func(ctx context.Context, _ *struct{}) (*models.SystemdUnitStatusResponse, error) {
		status, err := s.options.Systemd.GetServiceStatus(ctx, unit)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to get unit status", err)
		}
		return &models.SystemdUnitStatusResponse{
			Body: models.SystemdUnitStatus{
				Unit:   unit,
				Status: status,
			},
		}, nil
	})
}
