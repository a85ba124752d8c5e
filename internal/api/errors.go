package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/complog/internal/api/models"
	"github.com/smazurov/complog/internal/logging"
)

func (s *Server) registerErrorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "render-error-line",
		Method:      http.MethodGet,
		Path:        "/api/log/errors/{family}/{code}",
		Summary:     "Render Error",
		Description: "Render an error code of a registered family the way DisplayErrorLine prints it",
		Tags:        []string{"errors"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(_ context.Context, input *models.ErrorLineRequest) (*models.ErrorLineResponse, error) {
		fam, ok := s.facility.ResolveFamily(input.Family)
		if !ok {
			return nil, huma.Error404NotFound("No error family " + strconv.Itoa(input.Family))
		}
		entry, known := fam.Lookup(input.Code)

		buf := logging.NewBuffer(logging.LogBufferLen)
		s.facility.FormatError(buf, input.Family, input.Code, input.Status, input.Line)

		return &models.ErrorLineResponse{
			Body: models.ErrorLineData{
				Family:     fam.Number,
				FamilyName: fam.Name,
				Label:      entry.Label,
				Known:      known,
				Text:       buf.String(),
			},
		}, nil
	})
}
