package models

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// User is a stored identity. PasswordHash is nil for accounts that were
// invited by an admin but never completed signup; such accounts cannot
// log in with a password. Email is nil for students recorded without
// contact details; every account that can log in has one.
type User struct {
	ID           string  `gorm:"primaryKey"  json:"id"`
	Email        *string `gorm:"uniqueIndex" json:"email"`
	PasswordHash *string `json:"-"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Name         string  `json:"name"`
	Role         Role    `gorm:"not null"             json:"role"`
	Image        string  `json:"image"`
	Subject      string  `json:"subject"`
	SubjectOther string  `json:"subject_other"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvitationToken binds a short signup code to an email address.
// Identifier is "invite:" + the invited email. A row is valid while it
// still exists and now < ExpiresAt; redemption deletes it. Uniqueness is
// keyed by code, so one email may have several live codes at once.
type InvitationToken struct {
	Code       string    `gorm:"primaryKey"     json:"code"`
	Identifier string    `gorm:"index;not null" json:"identifier"`
	ExpiresAt  time.Time `gorm:"not null"       json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type Classroom struct {
	ID          string `gorm:"primaryKey"     json:"id"`
	Name        string `gorm:"not null"       json:"name"`
	Description string `json:"description"`
	TeacherID   string `gorm:"index;not null" json:"teacher_id"`
}

type CompetencyDomain struct {
	ID          string `gorm:"primaryKey"     json:"id"`
	Title       string `gorm:"not null"       json:"title"`
	Description string `json:"description"`
	CreatedByID string `gorm:"index;not null" json:"created_by_id"`
	IsArchived  bool   `gorm:"default:false"  json:"is_archived"`
}

// Competency has no owner column of its own; ownership follows the domain.
type Competency struct {
	ID       string `gorm:"primaryKey"     json:"id"`
	Title    string `gorm:"not null"       json:"title"`
	DomainID string `gorm:"index;not null" json:"domain_id"`
}

type Enrollment struct {
	ID          string `gorm:"primaryKey"                             json:"id"`
	ClassroomID string `gorm:"not null;uniqueIndex:idx_class_student" json:"classroom_id"`
	StudentID   string `gorm:"not null;uniqueIndex:idx_class_student" json:"student_id"`
}
