package models

// SystemdUnitStatus contains the state of the unit running this process.
type SystemdUnitStatus struct {
	Unit   string `json:"unit" example:"complog.service" doc:"Unit name"`
	Status string `json:"status" example:"active" doc:"Unit ActiveState (active, inactive, failed, etc.)"`
}

// SystemdUnitStatusResponse wraps SystemdUnitStatus for API responses.
type SystemdUnitStatusResponse struct {
	Body SystemdUnitStatus
}
