package api

// ApiResponse wraps every response body
type ApiResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// SwitchRequest selects the animation to run
type SwitchRequest struct {
	Name string `json:"name" binding:"required"`
}

// AnimationStatus describes the running animation
type AnimationStatus struct {
	Name     string  `json:"name"`
	Finished bool    `json:"finished"`
	TickRate float64 `json:"tick_rate"`
}

// AnimationList lists the catalog
type AnimationList struct {
	Active     string   `json:"active"`
	Animations []string `json:"animations"`
}
