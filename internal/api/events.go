package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/smazurov/complog/internal/events"
)

type streamInput struct {
	Replay bool `query:"replay" doc:"Send the record history before live events"`
}

// registerSSERoutes registers the event stream of dispatched records and
// registry changes.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/log/events",
		Summary:     "Log Event Stream",
		Description: "Real-time stream of dispatched records, level changes, destination changes and config reloads",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"log-entry":           events.LogEntryEvent{},
		"level-changed":       events.LevelChangedEvent{},
		"destination-changed": events.DestinationChangedEvent{},
		"config-reloaded":     events.ConfigReloadedEvent{},
	}, func(ctx context.Context, input *streamInput, send sse.Sender) {
		eventCh := make(chan any, 100)

		if s.eventBus != nil {
			unsubscribers := []func(){
				events.SubscribeToChannel[events.LogEntryEvent](s.eventBus, eventCh),
				events.SubscribeToChannel[events.LevelChangedEvent](s.eventBus, eventCh),
				events.SubscribeToChannel[events.DestinationChangedEvent](s.eventBus, eventCh),
				events.SubscribeToChannel[events.ConfigReloadedEvent](s.eventBus, eventCh),
			}
			defer func() {
				for _, unsub := range unsubscribers {
					unsub()
				}
			}()
		}

		// replayed records may also arrive live; clients dedupe on seq
		if input.Replay {
			for _, e := range s.facility.History() {
				if err := send.Data(events.LogEntryEvent{
					Seq:       e.Seq,
					Timestamp: e.Timestamp.Format(time.RFC3339Nano),
					Component: e.Component,
					Level:     e.Level,
					Thread:    e.Thread,
					Function:  e.Function,
					Message:   e.Message,
				}); err != nil {
					return
				}
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
