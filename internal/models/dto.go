package models

// ===== AUTH DTOs =====

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both register and login. The token is a
// deterministic credential fingerprint, not a session.
type AuthResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// ===== COURSE DTOs =====

// CourseItem is a course document prepared for transport: the store's
// object id is rendered as a hex string under "id".
type CourseItem struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Level       *string `json:"level,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CourseListResponse always carries an items array; when the store
// cannot be read the array is empty and Error describes why.
type CourseListResponse struct {
	Items []CourseItem `json:"items"`
	Error string       `json:"error,omitempty"`
}

// ===== DIAGNOSTICS DTOs =====

// DiagnosticsResponse reports backend and store health as display
// strings. Every field is always populated; the endpoint itself never
// fails.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// RootResponse is the landing payload for GET /.
type RootResponse struct {
	Message string `json:"message"`
}
