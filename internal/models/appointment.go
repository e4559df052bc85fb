package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the canonical status of an appointment.
// Legacy rows may still carry "Confirmed" or "Cancelled"; those are folded
// into the canonical set at read time, never written back.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusApproved  AppointmentStatus = "Approved"
	StatusRejected  AppointmentStatus = "Rejected"
	StatusCompleted AppointmentStatus = "Completed"
)

// Legacy synonyms accepted on read.
const (
	legacyStatusConfirmed = "Confirmed"
	legacyStatusCancelled = "Cancelled"
)

// AppointmentMode says where the appointment happens.
type AppointmentMode string

const (
	ModeOnline   AppointmentMode = "Online"
	ModeInClinic AppointmentMode = "In-clinic"
)

// AppointmentType classifies the session, independent of mode.
type AppointmentType string

const (
	TypeConsultation AppointmentType = "Consultation"
	TypeVaccination  AppointmentType = "Vaccination"
	TypeTraining     AppointmentType = "Training"
)

// AppointmentAction is a veterinarian-side transition command.
type AppointmentAction string

const (
	ActionApprove  AppointmentAction = "approve"
	ActionReject   AppointmentAction = "reject"
	ActionComplete AppointmentAction = "complete"
)

var (
	ErrInvalidTransition  = errors.New("invalid appointment status transition")
	ErrNotAssignedVet     = errors.New("actor is not the assigned veterinarian")
	ErrStatusConflict     = errors.New("appointment status changed concurrently")
	ErrAppointmentMissing = errors.New("appointment not found")
)

// Appointment represents a booked session between a pet owner and a
// veterinarian. VetID is the authoritative link; older rows may only carry a
// free-text VetName, which is matched best-effort (see VisibleToVet).
type Appointment struct {
	BaseModel
	OwnerID string `gorm:"size:36;index;not null" json:"ownerId"`
	VetID   string `gorm:"size:36;index" json:"vetId"`
	VetName string `gorm:"size:150" json:"vetName"`

	PetName  string `gorm:"size:150" json:"petName"`
	PetPhoto string `gorm:"size:500" json:"petPhoto,omitempty"`

	// Denormalized owner contact shown on the veterinarian side.
	OwnerName  string `gorm:"size:150" json:"ownerName,omitempty"`
	OwnerPhone string `gorm:"size:50" json:"ownerPhone,omitempty"`
	OwnerEmail string `gorm:"size:255" json:"ownerEmail,omitempty"`

	Date time.Time       `gorm:"index" json:"date"`
	Time string          `gorm:"size:50" json:"time"`
	Mode AppointmentMode `gorm:"size:20" json:"mode"`
	Type AppointmentType `gorm:"size:30" json:"type"`

	Status          AppointmentStatus `gorm:"size:20;default:'Pending'" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes"`
	RejectionReason string            `gorm:"type:text" json:"rejectionReason,omitempty"`
	Prescription    string            `gorm:"type:text" json:"prescription,omitempty"`
}

// NormalizeStatus folds any raw status string into the canonical four-value
// set. Total: legacy synonyms map to their canonical equivalent and anything
// unrecognized defaults to Pending.
func NormalizeStatus(raw string) AppointmentStatus {
	switch AppointmentStatus(raw) {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return AppointmentStatus(raw)
	}
	switch raw {
	case legacyStatusConfirmed:
		return StatusApproved
	case legacyStatusCancelled:
		return StatusRejected
	}
	return StatusPending
}

// NormalizeMode resolves the mode from both the mode and type columns; older
// rows stored "Online" in either one. Anything else is In-clinic.
func NormalizeMode(rawMode, rawType string) AppointmentMode {
	if rawMode == string(ModeOnline) || rawType == string(ModeOnline) {
		return ModeOnline
	}
	return ModeInClinic
}

// NormalizeType folds the classification column into the closed vocabulary,
// defaulting to Consultation.
func NormalizeType(raw string) AppointmentType {
	switch AppointmentType(raw) {
	case TypeConsultation, TypeVaccination, TypeTraining:
		return AppointmentType(raw)
	}
	return TypeConsultation
}

// TargetStatus returns the status an action leads to.
func TargetStatus(action AppointmentAction) (AppointmentStatus, bool) {
	switch action {
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	case ActionComplete:
		return StatusCompleted, true
	}
	return "", false
}

// CanTransition reports whether an action is valid from the current status.
// Pending accepts approve/reject, Approved accepts complete. Rejected and
// Completed are terminal, and nothing ever goes back to Pending.
func CanTransition(current AppointmentStatus, action AppointmentAction) bool {
	switch action {
	case ActionApprove, ActionReject:
		return current == StatusPending
	case ActionComplete:
		return current == StatusApproved
	}
	return false
}

// Normalize maps a raw row into canonical vocabulary and fills display
// defaults. This is the single conversion boundary: business logic only ever
// sees normalized appointments.
func (a *Appointment) Normalize() {
	a.Status = NormalizeStatus(string(a.Status))
	a.Mode = NormalizeMode(string(a.Mode), string(a.Type))
	a.Type = NormalizeType(string(a.Type))
	if strings.TrimSpace(a.PetName) == "" {
		a.PetName = "Pet"
	}
	if strings.TrimSpace(a.Time) == "" {
		a.Time = "TBD"
	}
	if strings.TrimSpace(a.Notes) == "" {
		a.Notes = "No notes provided."
	}
}

// AfterFind normalizes every appointment loaded through gorm.
func (a *Appointment) AfterFind(tx *gorm.DB) error {
	a.Normalize()
	return nil
}

// VisibleToOwner reports whether a pet owner may see this appointment.
func (a *Appointment) VisibleToOwner(ownerID string) bool {
	return a.OwnerID == ownerID
}

// VisibleToVet reports whether a veterinarian actor may see and act on this
// appointment. A non-empty VetID is authoritative. Rows without one fall back
// to matching the stored free-text vet name against the actor's display name,
// case-insensitively, with and without a "Dr. " prefix, by equality or
// containment.
//
// The name fallback is a compatibility shim for rows that predate the vet_id
// column, not a security boundary: it can over-match when two veterinarians
// share a name prefix and under-match on typos in the stored name.
func (a *Appointment) VisibleToVet(vetID, vetDisplayName string) bool {
	if a.VetID != "" {
		return a.VetID == vetID
	}

	actorName := strings.ToLower(strings.TrimSpace(vetDisplayName))
	if actorName == "" {
		return false
	}
	storedName := strings.ToLower(strings.TrimSpace(a.VetName))
	if storedName == "" {
		return false
	}

	for _, candidate := range []string{actorName, "dr. " + actorName} {
		if storedName == candidate || strings.Contains(storedName, candidate) {
			return true
		}
	}
	return false
}
