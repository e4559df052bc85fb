package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"petcare-app-server/internal/config"
	"petcare-app-server/internal/metrics"
	"petcare-app-server/internal/middleware"
	"petcare-app-server/internal/models"
	"petcare-app-server/internal/utils"
)

// PetHandler handles pet profile related requests.
type PetHandler struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Log     *zap.Logger
	Metrics *metrics.Collector
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger, collector *metrics.Collector) *PetHandler {
	return &PetHandler{DB: db, Cfg: cfg, Log: log, Metrics: collector}
}

// PetRequest represents the request body for creating or updating a pet.
type PetRequest struct {
	Name         string   `json:"name" binding:"required"`
	Species      string   `json:"species"`
	Breed        string   `json:"breed"`
	AgeYears     *int     `json:"ageYears"`
	AgeMonths    *int     `json:"ageMonths"`
	Gender       string   `json:"gender" binding:"omitempty,oneof=male female unknown"`
	Color        string   `json:"color"`
	Weight       *float64 `json:"weight"`
	ProfileImage string   `json:"profileImage"`
	MicrochipID  string   `json:"microchipId"`
	IsNeutered   bool     `json:"isNeutered"`
	IsRescue     bool     `json:"isRescue"`
	Notes        string   `json:"notes"`
}

func (req *PetRequest) apply(pet *models.Pet) {
	pet.Name = strings.TrimSpace(req.Name)
	pet.Species = defaultString(req.Species, "Dog")
	pet.Breed = defaultString(strings.TrimSpace(req.Breed), "Not specified")
	pet.AgeYears = req.AgeYears
	pet.AgeMonths = req.AgeMonths
	pet.Gender = defaultString(req.Gender, "unknown")
	pet.Color = defaultString(strings.TrimSpace(req.Color), "Not specified")
	pet.Weight = req.Weight
	if req.ProfileImage != "" {
		pet.ProfileImage = req.ProfileImage
	}
	pet.MicrochipID = optionalString(strings.TrimSpace(req.MicrochipID))
	pet.IsNeutered = req.IsNeutered
	pet.IsRescue = req.IsRescue
	pet.Notes = defaultString(strings.TrimSpace(req.Notes), "No additional notes.")
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// CreatePet handles adding a new pet profile for the logged-in owner.
func (h *PetHandler) CreatePet(c *gin.Context) {
	var req PetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Owner ID not found in token")
		return
	}

	pet := models.Pet{
		OwnerID: ownerID,
		PetID:   models.GeneratePetTag(time.Now().UnixMilli()),
	}
	req.apply(&pet)

	if err := h.DB.Create(&pet).Error; err != nil {
		utils.InternalServerError(c, "Failed to create pet profile: "+err.Error())
		return
	}

	h.Metrics.PetsCreatedTotal.Inc()
	utils.Created(c, "Pet profile created successfully", pet)
}

// GetPets handles fetching all pets owned by the logged-in user.
func (h *PetHandler) GetPets(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var pets []models.Pet
	if err := h.DB.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&pets).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch pets: "+err.Error())
		return
	}

	utils.Success(c, "Pets fetched successfully", pets)
}

// GetPetByID handles fetching one pet owned by the logged-in user.
func (h *PetHandler) GetPetByID(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
	if !ok {
		return
	}
	utils.Success(c, "Pet fetched successfully", pet)
}

// UpdatePet handles updating a pet profile owned by the logged-in user.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
	if !ok {
		return
	}

	var req PetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	req.apply(pet)

	if err := h.DB.Save(pet).Error; err != nil {
		utils.InternalServerError(c, "Failed to update pet profile: "+err.Error())
		return
	}

	utils.Success(c, "Pet profile updated successfully", pet)
}

// DeletePet handles deleting a pet profile owned by the logged-in user.
// Pets support delete; appointments deliberately do not.
func (h *PetHandler) DeletePet(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(pet).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete pet profile: "+err.Error())
		return
	}

	utils.Success(c, "Pet profile deleted successfully", nil)
}

// UploadPetImage handles a multipart image upload for a pet. The file is
// written to local disk and the stored path is set on the pet profile.
func (h *PetHandler) UploadPetImage(c *gin.Context) {
	pet, ok := h.loadOwnedPet(c)
	if !ok {
		return
	}

	path, ok := storeUploadedImage(c, h.Cfg, h.Log, "pets", "pet")
	if !ok {
		return
	}

	pet.ProfileImage = path
	if err := h.DB.Model(pet).Update("profile_image", pet.ProfileImage).Error; err != nil {
		utils.InternalServerError(c, "Failed to store image path: "+err.Error())
		return
	}

	utils.Success(c, "Pet image uploaded successfully", gin.H{"path": pet.ProfileImage})
}

// loadOwnedPet fetches the pet named in the :id param, scoped to the
// authenticated owner, writing the error response itself when it cannot.
func (h *PetHandler) loadOwnedPet(c *gin.Context) (*models.Pet, bool) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var pet models.Pet
	if err := h.DB.Where("id = ? AND owner_id = ?", c.Param("id"), ownerID).First(&pet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pet not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &pet, true
}
