package domain

// Identity represents a caller whose bearer token has been verified by the
// identity service.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

func (i *Identity) Valid() bool {
	return i != nil && i.UserID != ""
}
