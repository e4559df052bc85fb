package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin        Role = "admin"
	RolePetOwner     Role = "pet_owner"
	RoleVeterinarian Role = "veterinarian"
	RoleNGO          Role = "ngo"
)

// User represents a user in the system
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Name         string `gorm:"size:150" json:"name"`
	Role         Role   `gorm:"size:20;default:'pet_owner'" json:"role"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`

	// Veterinarian profile columns. Null for every other role.
	VetSpecialty       *string  `gorm:"size:150" json:"vetSpecialty,omitempty"`
	VetExperienceYears *int     `json:"vetExperienceYears,omitempty"`
	VetClinicName      *string  `gorm:"size:255" json:"vetClinicName,omitempty"`
	VetClinicAddress   *string  `gorm:"size:255" json:"vetClinicAddress,omitempty"`
	VetCity            *string  `gorm:"size:100" json:"vetCity,omitempty"`
	VetConsultationFee *float64 `json:"vetConsultationFee,omitempty"`
	VetAvailability    *string  `gorm:"size:100" json:"vetAvailability,omitempty"`
	VetDescription     *string  `gorm:"type:text" json:"vetDescription,omitempty"`
	VetImageURL        *string  `gorm:"size:500" json:"vetImageUrl,omitempty"`

	// Relations (not always preloaded)
	RefreshTokens     []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Pets              []Pet          `gorm:"foreignKey:OwnerID" json:"-"`
	OwnerAppointments []Appointment  `gorm:"foreignKey:OwnerID" json:"-"`
	Notifications     []Notification `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               Role      `json:"role"`
	PhoneNumber        string    `json:"phoneNumber,omitempty"`
	ProfileImage       string    `json:"profileImage,omitempty"`
	VetSpecialty       *string   `json:"vetSpecialty,omitempty"`
	VetExperienceYears *int      `json:"vetExperienceYears,omitempty"`
	VetClinicName      *string   `json:"vetClinicName,omitempty"`
	VetClinicAddress   *string   `json:"vetClinicAddress,omitempty"`
	VetCity            *string   `json:"vetCity,omitempty"`
	VetConsultationFee *float64  `json:"vetConsultationFee,omitempty"`
	VetAvailability    *string   `json:"vetAvailability,omitempty"`
	VetDescription     *string   `json:"vetDescription,omitempty"`
	VetImageURL        *string   `json:"vetImageUrl,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		PhoneNumber:        u.PhoneNumber,
		ProfileImage:       u.ProfileImage,
		VetSpecialty:       u.VetSpecialty,
		VetExperienceYears: u.VetExperienceYears,
		VetClinicName:      u.VetClinicName,
		VetClinicAddress:   u.VetClinicAddress,
		VetCity:            u.VetCity,
		VetConsultationFee: u.VetConsultationFee,
		VetAvailability:    u.VetAvailability,
		VetDescription:     u.VetDescription,
		VetImageURL:        u.VetImageURL,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
