package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/complog/internal/api/models"
	"github.com/smazurov/complog/internal/logging"
)

func (s *Server) componentData(c logging.Component) models.ComponentData {
	level := s.facility.Level(c)
	return models.ComponentData{
		Name:        c.Name(),
		Display:     c.Display(),
		Level:       level.String(),
		LevelValue:  int(level),
		Destination: s.facility.Destination(c).String(),
		Pinned:      s.facility.Pinned(c),
	}
}

func lookupComponent(name string) (logging.Component, error) {
	c, ok := logging.ComponentByName(name)
	if !ok {
		return 0, huma.Error404NotFound("Unknown component " + name)
	}
	return c, nil
}

func lookupLevel(name string) (logging.Level, error) {
	l, ok := logging.LevelByName(name)
	if !ok {
		return 0, huma.Error422UnprocessableEntity("Unknown level " + name)
	}
	return l, nil
}

// destinationError maps registry errors onto HTTP statuses.
func destinationError(err error) error {
	switch {
	case errors.Is(err, logging.ErrPathTooLong), errors.Is(err, logging.ErrInvalidLogPath):
		return huma.Error400BadRequest("Invalid log destination", err)
	case errors.Is(err, logging.ErrUnknownComponent):
		return huma.Error404NotFound("Unknown component", err)
	default:
		return huma.Error500InternalServerError("Failed to set destination", err)
	}
}

func (s *Server) registerComponentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-components",
		Method:      http.MethodGet,
		Path:        "/api/log/components",
		Summary:     "List Components",
		Description: "List every log component with its level, destination and pin state",
		Tags:        []string{"components"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.ComponentListResponse, error) {
		comps := logging.Components()
		data := make([]models.ComponentData, 0, len(comps))
		for _, c := range comps {
			data = append(data, s.componentData(c))
		}
		return &models.ComponentListResponse{
			Body: models.ComponentListData{Components: data, Count: len(data)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-component",
		Method:      http.MethodGet,
		Path:        "/api/log/components/{name}",
		Summary:     "Get Component",
		Description: "Get the level, destination and pin state of one component",
		Tags:        []string{"components"},
		Security:    withAuth(),
		Errors:      []int{401, 404},
	}, func(_ context.Context, input *models.ComponentPath) (*models.ComponentResponse, error) {
		c, err := lookupComponent(input.Name)
		if err != nil {
			return nil, err
		}
		return &models.ComponentResponse{Body: s.componentData(c)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-component-level",
		Method:      http.MethodPut,
		Path:        "/api/log/components/{name}/level",
		Summary:     "Set Component Level",
		Description: "Change the threshold of one component. COMPONENT_ALL changes every component that is not pinned.",
		Tags:        []string{"components"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 409, 422},
	}, func(_ context.Context, input *models.SetLevelRequest) (*models.ComponentResponse, error) {
		c, err := lookupComponent(input.Name)
		if err != nil {
			return nil, err
		}
		level, err := lookupLevel(input.Body.Level)
		if err != nil {
			return nil, err
		}
		if err := s.facility.SetComponentLevelFrom(c, level, "api"); err != nil {
			if errors.Is(err, logging.ErrLevelPinned) {
				return nil, huma.Error409Conflict(c.Name()+" level was set in the environment", err)
			}
			return nil, huma.Error500InternalServerError("Failed to set level", err)
		}
		s.logger.Info("Component level changed", "component", c.Name(), "level", level.String())
		return &models.ComponentResponse{Body: s.componentData(c)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-component-destination",
		Method:      http.MethodPut,
		Path:        "/api/log/components/{name}/destination",
		Summary:     "Set Component Destination",
		Description: "Route one component to SYSLOG, STDOUT, STDERR, TEST or a file",
		Tags:        []string{"components"},
		Security:    withAuth(),
		Errors:      []int{400, 401, 404},
	}, func(_ context.Context, input *models.SetDestinationRequest) (*models.ComponentResponse, error) {
		c, err := lookupComponent(input.Name)
		if err != nil {
			return nil, err
		}
		if err := s.facility.SetDestination(c, input.Body.Destination); err != nil {
			return nil, destinationError(err)
		}
		return &models.ComponentResponse{Body: s.componentData(c)}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-default-destination",
		Method:      http.MethodPut,
		Path:        "/api/log/destination",
		Summary:     "Set Default Destination",
		Description: "Route every component except COMPONENT_STDOUT to one destination",
		Tags:        []string{"components"},
		Security:    withAuth(),
		Errors:      []int{400, 401},
	}, func(_ context.Context, input *models.SetDefaultDestinationRequest) (*models.DefaultDestinationResponse, error) {
		if err := s.facility.SetDefaultDestination(input.Body.Destination); err != nil {
			return nil, destinationError(err)
		}
		return &models.DefaultDestinationResponse{
			Body: models.DefaultDestinationData{
				Destination: s.facility.Destination(logging.ComponentLog).String(),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "list-levels",
		Method:      http.MethodGet,
		Path:        "/api/log/levels",
		Summary:     "List Levels",
		Description: "The level table with syslog priorities",
		Tags:        []string{"components"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, func(_ context.Context, _ *struct{}) (*models.LevelListResponse, error) {
		resp := &models.LevelListResponse{}
		for _, l := range logging.Levels() {
			name, _ := l.Name()
			resp.Body.Levels = append(resp.Body.Levels, models.LevelData{
				Value:    int(l),
				Name:     name,
				Short:    l.ShortName(),
				Priority: int(l.Priority()),
			})
		}
		return resp, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "emit-record",
		Method:      http.MethodPost,
		Path:        "/api/log/records",
		Summary:     "Emit Record",
		Description: "Dispatch one record through a component, subject to its threshold. NIV_FATAL is refused.",
		Tags:        []string{"components"},
		Security:    withAuth(),
		Errors:      []int{401, 404, 422},
	}, func(ctx context.Context, input *models.EmitRequest) (*models.EmitResponse, error) {
		c, err := lookupComponent(input.Body.Component)
		if err != nil {
			return nil, err
		}
		level, err := lookupLevel(input.Body.Level)
		if err != nil {
			return nil, err
		}
		if level == logging.LevelFatal {
			return nil, huma.Error422UnprocessableEntity("NIV_FATAL terminates the process and cannot be emitted remotely")
		}

		if input.Body.Thread != "" {
			ctx = s.facility.WithThreadName(ctx, input.Body.Thread)
		}
		fn := input.Body.Function
		if fn == "" {
			fn = "api"
		}

		resp := &models.EmitResponse{}
		resp.Body.Dispatched = s.facility.Enabled(c, level)
		s.facility.Display(ctx, c, fn, level, "%s", input.Body.Message)
		return resp, nil
	})
}
