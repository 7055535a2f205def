package output

import (
	"time"

	"github.com/regenrek/peakydock/internal/dock"
)

type LayoutSummary struct {
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
	Panels  int       `json:"panels"`
	Stacks  int       `json:"stacks"`
}

type LayoutList struct {
	Dir     string          `json:"dir"`
	Layouts []LayoutSummary `json:"layouts"`
	Total   int             `json:"total"`
}

type LayoutDetail struct {
	LayoutSummary
	Layout dock.Layout `json:"layout"`
}

// ValidationResult reports a layout file check. Errors holds one message
// per problem found.
type ValidationResult struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Panels int      `json:"panels,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

type ActionResult struct {
	Action  string         `json:"action"`
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type ConfigView struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Fresh  bool   `json:"fresh"`
	Config any    `json:"config"`
}
