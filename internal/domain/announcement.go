package domain

import "time"

// Announcement is a post published either inside a classroom or on the
// general campus feed (ClassroomID nil).
type Announcement struct {
	ID            int64
	Title         string
	Content       string
	Category      string
	ClassroomID   *int64
	AuthorID      int64
	AllowComments bool
	Pinned        bool
	IsGeneral     bool
	IsActive      bool
	PublishedAt   time.Time
	EditedAt      *time.Time
}
