package update_appointment_status

// UpdateStatusRequest is the HTTP request model.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse acknowledges the transition.
type UpdateStatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
