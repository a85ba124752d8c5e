package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/complog/internal/api/models"
	"github.com/smazurov/complog/internal/logging"
)

func (s *Server) registerHistoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-history",
		Method:      http.MethodGet,
		Path:        "/api/log/history",
		Summary:     "Record History",
		Description: "Most recent dispatched records, oldest first",
		Tags:        []string{"history"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(_ context.Context, input *models.HistoryRequest) (*models.HistoryResponse, error) {
		var filter string
		if input.Component != "" {
			c, err := lookupComponent(input.Component)
			if err != nil {
				return nil, err
			}
			filter = c.Name()
		}

		entries := s.facility.History()
		if filter != "" {
			kept := entries[:0]
			for _, e := range entries {
				if e.Component == filter {
					kept = append(kept, e)
				}
			}
			entries = kept
		}
		if input.Limit > 0 && len(entries) > input.Limit {
			entries = entries[len(entries)-input.Limit:]
		}

		resp := &models.HistoryResponse{}
		resp.Body.Entries = make([]models.HistoryEntry, 0, len(entries))
		for _, e := range entries {
			resp.Body.Entries = append(resp.Body.Entries, historyEntry(e))
		}
		resp.Body.Count = len(resp.Body.Entries)
		return resp, nil
	})
}

func historyEntry(e logging.LogEntry) models.HistoryEntry {
	return models.HistoryEntry{
		Seq:       e.Seq,
		Timestamp: e.Timestamp,
		Component: e.Component,
		Level:     e.Level,
		Thread:    e.Thread,
		Function:  e.Function,
		Message:   e.Message,
	}
}
