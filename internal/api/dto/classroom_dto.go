package dto

import "time"

// ClassroomCreateRequest payload for new classrooms.
type ClassroomCreateRequest struct {
	Name        string     `json:"nombre"`
	Title       string     `json:"titulo"`
	Description string     `json:"descripcion"`
	SectionID   *int64     `json:"seccionId"`
	StartDate   *time.Time `json:"fechaInicio"`
	EndDate     *time.Time `json:"fechaFin"`
}

// ClassroomJoinRequest payload for joining a classroom by its access code.
type ClassroomJoinRequest struct {
	AccessCode string `json:"codigoAcceso"`
}

// InvitationCreateRequest payload for classroom invitations.
type InvitationCreateRequest struct {
	ClassroomID  int64  `json:"aulaVirtualId"`
	InviteeEmail string `json:"correoInvitado"`
	Message      string `json:"mensaje"`
}

// InvitationRespondRequest payload for accepting or declining.
type InvitationRespondRequest struct {
	Accept bool `json:"aceptar"`
}

// AnnouncementCreateRequest payload for publishing announcements.
type AnnouncementCreateRequest struct {
	Title         string `json:"titulo"`
	Content       string `json:"contenido"`
	Category      string `json:"categoria"`
	ClassroomID   *int64 `json:"aulaId"`
	AllowComments bool   `json:"permiteComentarios"`
	Pinned        bool   `json:"fijado"`
}
