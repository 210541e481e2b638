package transport

// HabitCreateRequest carries the fields a caller may set at creation. Owner
// identity always comes from the verified token, never from the body.
type HabitCreateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	ReminderTime string `json:"reminder_time"`
	Image        string `json:"image"`
	OwnerName    string `json:"owner_name"`
	OwnerEmail   string `json:"owner_email"`
	Public       *bool  `json:"public"`
}

// HabitUpdateRequest is a partial update; absent fields stay untouched.
type HabitUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ReminderTime *string `json:"reminder_time"`
	Image        *string `json:"image"`
	Public       *bool   `json:"public"`
}
