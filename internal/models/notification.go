package models

import "gorm.io/gorm"

// NotificationType classifies a notification for icon/filter purposes.
type NotificationType string

const (
	NotificationSOS          NotificationType = "sos"
	NotificationMedical      NotificationType = "medical"
	NotificationAppointment  NotificationType = "appointment"
	NotificationVaccination  NotificationType = "vaccination"
	NotificationPrescription NotificationType = "prescription"
	NotificationTraining     NotificationType = "training"
)

// NormalizeNotificationType folds unknown values into "medical".
func NormalizeNotificationType(raw string) NotificationType {
	switch NotificationType(raw) {
	case NotificationSOS, NotificationMedical, NotificationAppointment,
		NotificationVaccination, NotificationPrescription, NotificationTraining:
		return NotificationType(raw)
	}
	return NotificationMedical
}

// Notification is a per-user inbox entry. Appointment transitions write one
// for the counterparty.
type Notification struct {
	BaseModel
	UserID          string           `gorm:"size:36;index;not null" json:"userId"`
	Type            NotificationType `gorm:"size:20" json:"type"`
	Title           string           `gorm:"size:255" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	PetName         string           `gorm:"size:150" json:"petName"`
	IsRead          bool             `gorm:"default:false" json:"isRead"`
	IsUserTriggered bool             `gorm:"default:false" json:"isUserTriggered"`
}

// AfterFind keeps the type within the closed vocabulary.
func (n *Notification) AfterFind(tx *gorm.DB) error {
	n.Type = NormalizeNotificationType(string(n.Type))
	if n.Title == "" {
		n.Title = "Notification"
	}
	if n.PetName == "" {
		n.PetName = "Pet"
	}
	return nil
}
