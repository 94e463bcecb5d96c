package domain

// Preferences are a user's display settings.
type Preferences struct {
	Theme                string `json:"theme,omitempty" schema:"theme" validate:"omitempty,oneof=light dark system"`
	NotificationsEnabled bool   `json:"notifications_enabled" schema:"notifications_enabled"`
	DefaultView          string `json:"default_view,omitempty" schema:"default_view"`
}

// A Profile is the backend's record of a user.
type Profile struct {
	ID          string      `json:"id" validate:"required"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
	Preferences Preferences `json:"preferences"`
}

// A ProfileUpdate changes a user's name or preferences.
type ProfileUpdate struct {
	Name        string       `json:"name,omitempty" schema:"name" validate:"omitempty,max=100"`
	Preferences *Preferences `json:"preferences,omitempty" schema:"preferences"`
}

// A TokenVerification is the backend's view of a bearer token.
type TokenVerification struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// A Message is the acknowledgement returned by deletions and simulation moves.
type Message struct {
	Message string `json:"message"`
}

// Health reports the backend's liveness.
type Health struct {
	Status     string            `json:"status" validate:"required"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services"`
	APIVersion string            `json:"api_version"`
}

// Healthy asserts whether the backend and every service it depends on are up.
func (h Health) Healthy() bool {
	if h.Status != "healthy" {
		return false
	}

	for _, status := range h.Services {
		if status != "up" {
			return false
		}
	}
	return true
}
