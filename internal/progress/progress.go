// Package progress persists per-user playback positions.
package progress

import "time"

// Record is a user's playback position for one catalog item.
type Record struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Position  float64   `json:"position"`
	Duration  float64   `json:"duration"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Done reports whether playback is close enough to the end to count
// as finished. Items shorter than a minute are never marked done.
func (r *Record) Done() bool {
	if r.Duration < 60 {
		return false
	}
	return r.Position >= r.Duration*0.95
}
