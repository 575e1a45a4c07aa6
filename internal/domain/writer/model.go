package writer

// Writer represents a member of the content team. Read-only from this
// service's perspective; the roster is managed elsewhere.
type Writer struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// Roster roles considered when evaluating writer-based rules.
const (
	RoleWriter  = "writer"
	RoleManager = "manager"
)
