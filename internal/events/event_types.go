package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountLinked         EventType = "account_linked"
	EventInvitationCreated     EventType = "invitation_created"
	EventInvitationResponded   EventType = "invitation_responded"
	EventAnnouncementPublished EventType = "announcement_published"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountLinkedPayload payload.
type AccountLinkedPayload struct {
	Email     string `json:"email"`
	IsNew     bool   `json:"is_new"`
	Completed bool   `json:"completed"`
}

// InvitationCreatedPayload payload.
type InvitationCreatedPayload struct {
	ClassroomID  int64  `json:"classroom_id"`
	InviteeEmail string `json:"invitee_email"`
	Code         string `json:"code"`
}

// InvitationRespondedPayload payload.
type InvitationRespondedPayload struct {
	ClassroomID int64  `json:"classroom_id"`
	Status      string `json:"status"`
}

// AnnouncementPublishedPayload payload.
type AnnouncementPublishedPayload struct {
	AnnouncementID int64  `json:"announcement_id"`
	Title          string `json:"title"`
	IsGeneral      bool   `json:"is_general"`
}
