package domain

import "time"

// Habit represents a user-owned recurring activity with its completion history.
// Streak is a cached value derived from CompletionHistory at the last write;
// it is never set independently.
type Habit struct {
	ID                string      `json:"id"`
	OwnerID           string      `json:"owner_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Category          string      `json:"category"`
	ReminderTime      string      `json:"reminder_time"`
	Image             string      `json:"image,omitempty"`
	OwnerName         string      `json:"owner_name,omitempty"`
	OwnerEmail        string      `json:"owner_email,omitempty"`
	Public            bool        `json:"public"`
	Streak            int         `json:"streak"`
	CompletionHistory []time.Time `json:"completion_history"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// CompletedOn reports whether any history entry falls on the given day.
func (h *Habit) CompletedOn(day DayKey) bool {
	if h == nil {
		return false
	}
	for _, ts := range h.CompletionHistory {
		if DayOf(ts) == day {
			return true
		}
	}
	return false
}

// HabitPatch carries a partial update of the descriptive fields. Nil pointers
// leave the stored value untouched; an Image pointing at "" clears the image.
type HabitPatch struct {
	Title        *string
	Description  *string
	Category     *string
	ReminderTime *string
	Image        *string
	Public       *bool
}

// Empty reports whether the patch changes nothing.
func (p HabitPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.ReminderTime == nil && p.Image == nil && p.Public == nil
}
