package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petcare-app-server/internal/models"
	"petcare-app-server/internal/utils"
)

// DirectoryHandler serves the read-only directories: veterinarians, pet
// nannies, and pharmacies.
type DirectoryHandler struct {
	DB *gorm.DB
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(db *gorm.DB) *DirectoryHandler {
	return &DirectoryHandler{DB: db}
}

// GetVets handles fetching all registered veterinarians, sanitized.
func (h *DirectoryHandler) GetVets(c *gin.Context) {
	var vets []models.User
	if err := h.DB.Where("role = ?", models.RoleVeterinarian).Find(&vets).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch veterinarians: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(vets))
	for i, v := range vets {
		sanitized[i] = v.Sanitize()
	}

	utils.Success(c, "Veterinarians fetched successfully", sanitized)
}

// NannyResponse is the API shape for a pet nanny listing, with the stored
// comma-separated lists split out.
type NannyResponse struct {
	models.PetNanny
	Services []string `json:"services"`
	PetTypes []string `json:"petTypes"`
}

// GetNannies handles fetching pet nanny listings ordered by rating, with
// optional filters: ?search= (name), ?maxDistance= (km), ?service=, ?petType=.
func (h *DirectoryHandler) GetNannies(c *gin.Context) {
	query := h.DB.Order("rating desc")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if rawDistance := c.Query("maxDistance"); rawDistance != "" {
		maxDistance, err := strconv.ParseFloat(rawDistance, 64)
		if err != nil {
			utils.BadRequest(c, "Invalid maxDistance value")
			return
		}
		query = query.Where("distance_km <= ?", maxDistance)
	}

	var nannies []models.PetNanny
	if err := query.Find(&nannies).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch pet nannies: "+err.Error())
		return
	}

	// Services and pet types are stored as comma lists; filter here.
	service := strings.TrimSpace(c.Query("service"))
	petType := strings.TrimSpace(c.Query("petType"))

	results := make([]NannyResponse, 0, len(nannies))
	for _, nanny := range nannies {
		services := nanny.ServiceList()
		petTypes := nanny.PetTypeList()
		if service != "" && !containsFold(services, service) {
			continue
		}
		if petType != "" && !containsFold(petTypes, petType) {
			continue
		}
		results = append(results, NannyResponse{PetNanny: nanny, Services: services, PetTypes: petTypes})
	}

	utils.Success(c, "Pet nannies fetched successfully", results)
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}

// GetPharmacies handles fetching pharmacy listings.
func (h *DirectoryHandler) GetPharmacies(c *gin.Context) {
	var pharmacies []models.Pharmacy
	if err := h.DB.Order("rating desc").Find(&pharmacies).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch pharmacies: "+err.Error())
		return
	}

	utils.Success(c, "Pharmacies fetched successfully", pharmacies)
}
