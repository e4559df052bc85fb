package handlers

import (
	"fmt"
	"strings"
	"sync"
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

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Log     *zap.Logger
	Metrics *metrics.Collector

	// Sort capability is probed once per process, not re-negotiated inline on
	// every failed query.
	sortOnce   sync.Once
	sortColumn string
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger, collector *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg, Log: log, Metrics: collector}
}

// applyOrder sorts appointment queries by date ascending when the column is
// available, degrading to created_at and finally to an unsorted fetch.
// Callers must not assume order.
func (h *AppointmentHandler) applyOrder(query *gorm.DB) *gorm.DB {
	h.sortOnce.Do(func() {
		migrator := h.DB.Migrator()
		for _, column := range []string{"date", "created_at"} {
			if migrator.HasColumn(&models.Appointment{}, column) {
				h.sortColumn = column
				return
			}
		}
	})
	if h.sortColumn == "" {
		return query
	}
	return query.Order(h.sortColumn + " asc")
}

// CreateAppointmentRequest represents the request body for booking an
// appointment. Status cannot be supplied; bookings always start Pending.
type CreateAppointmentRequest struct {
	VetID    string `json:"vetId" binding:"omitempty,uuid"`
	VetName  string `json:"vetName"`
	PetName  string `json:"petName" binding:"required"`
	PetPhoto string `json:"petPhoto"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time"`
	Mode     string `json:"mode" binding:"omitempty,oneof=Online In-clinic"`
	Type     string `json:"type" binding:"omitempty,oneof=Consultation Vaccination Training"`
	Notes    string `json:"notes"`
}

// CreateAppointment handles booking a new appointment. Initiated by a pet
// owner; the veterinarian reference may be an id, a free-text name, or both.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Owner ID not found in token")
		return
	}

	if req.VetID == "" && strings.TrimSpace(req.VetName) == "" {
		utils.BadRequest(c, "Either vetId or vetName is required")
		return
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD or ISO 8601.")
		return
	}

	vetName := strings.TrimSpace(req.VetName)
	if req.VetID != "" {
		// Verify the referenced vet exists and is a veterinarian.
		var vet models.User
		if err := h.DB.Where("id = ? AND role = ?", req.VetID, models.RoleVeterinarian).First(&vet).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.NotFound(c, "Veterinarian not found or user is not a veterinarian")
			} else {
				utils.InternalServerError(c, "Database error verifying veterinarian: "+err.Error())
			}
			return
		}
		if vetName == "" {
			vetName = vet.Name
		}
	}

	// Denormalize owner contact so the vet panel can show it without joins.
	var owner models.User
	if err := h.DB.First(&owner, "id = ?", ownerID).Error; err != nil {
		utils.InternalServerError(c, "Database error loading owner profile: "+err.Error())
		return
	}

	appointment := models.Appointment{
		OwnerID:    ownerID,
		VetID:      req.VetID,
		VetName:    vetName,
		PetName:    req.PetName,
		PetPhoto:   req.PetPhoto,
		OwnerName:  owner.Name,
		OwnerPhone: owner.PhoneNumber,
		OwnerEmail: owner.Email,
		Date:       date,
		Time:       req.Time,
		Mode:       models.NormalizeMode(req.Mode, req.Type),
		Type:       models.NormalizeType(req.Type),
		Status:     models.StatusPending, // Bookings always start Pending
		Notes:      req.Notes,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	h.Metrics.AppointmentsTotal.WithLabelValues(string(models.StatusPending)).Inc()

	if appointment.VetID != "" {
		h.emitNotification(appointment.VetID, appointment.PetName,
			"New appointment request",
			fmt.Sprintf("%s requested a %s session for %s on %s.",
				appointment.OwnerName, appointment.Type, appointment.PetName, date.Format("Jan 2, 2006")))
	}

	appointment.Normalize()
	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments scoped to the logged-in
// actor: owners see their own bookings, veterinarians see assigned ones.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)
	userName, _ := middleware.GetUserNameFromContext(c)

	var appointments []models.Appointment
	var err error

	switch userRole {
	case models.RolePetOwner, models.RoleNGO:
		err = h.applyOrder(h.DB.Where("owner_id = ?", userID)).Find(&appointments).Error
	case models.RoleVeterinarian:
		// The authoritative link is vet_id. Rows without one are fetched too
		// and reconciled against the vet's display name below.
		err = h.applyOrder(h.DB.Where("vet_id = ? OR vet_id = '' OR vet_id IS NULL", userID)).Find(&appointments).Error
		if err == nil {
			appointments = filterVisibleToVet(appointments, userID, userName)
		}
	case models.RoleAdmin:
		err = h.applyOrder(h.DB.Session(&gorm.Session{})).Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments. Role: "+string(userRole))
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// filterVisibleToVet keeps only the appointments the vet actor may act on.
func filterVisibleToVet(appointments []models.Appointment, vetID, vetName string) []models.Appointment {
	visible := make([]models.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt.VisibleToVet(vetID, vetName) {
			visible = append(visible, apt)
		}
	}
	return visible
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the owner, the assigned veterinarian, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	if !h.actorMaySee(c, appointment) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// ApproveAppointment transitions a Pending appointment to Approved.
func (h *AppointmentHandler) ApproveAppointment(c *gin.Context) {
	h.transition(c, models.ActionApprove, "")
}

// RejectAppointmentRequest carries the optional rejection reason.
type RejectAppointmentRequest struct {
	Reason string `json:"reason"`
}

// RejectAppointment transitions a Pending appointment to Rejected, retaining
// the supplied reason as an audit note.
func (h *AppointmentHandler) RejectAppointment(c *gin.Context) {
	var req RejectAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}
	h.transition(c, models.ActionReject, strings.TrimSpace(req.Reason))
}

// CompleteAppointment transitions an Approved appointment to Completed. No UI
// affordance drives this automatically; it is an explicit vet action.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	h.transition(c, models.ActionComplete, "")
}

// transition validates and applies a status transition as the authenticated
// veterinarian. The write is conditional on the expected pre-transition
// status so two racing vets cannot silently overwrite each other.
func (h *AppointmentHandler) transition(c *gin.Context, action models.AppointmentAction, reason string) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	userName, _ := middleware.GetUserNameFromContext(c)

	if userRole != models.RoleAdmin {
		if userRole != models.RoleVeterinarian || !appointment.VisibleToVet(userID, userName) {
			utils.Forbidden(c, models.ErrNotAssignedVet.Error())
			return
		}
	}

	if !models.CanTransition(appointment.Status, action) {
		utils.BadRequest(c, fmt.Sprintf("%s: cannot %s an appointment in status %s",
			models.ErrInvalidTransition.Error(), action, appointment.Status))
		return
	}

	target, _ := models.TargetStatus(action)
	updates := map[string]interface{}{"status": target}
	if action == models.ActionReject && reason != "" {
		updates["rejection_reason"] = reason
	}

	// Conditional update: only succeeds if the stored status still equals the
	// expected pre-transition status (or one of its legacy spellings). NULL
	// rows normalize to Pending, so the Pending case must match them too.
	query := h.DB.Model(&models.Appointment{}).Where("id = ?", appointment.ID)
	if appointment.Status == models.StatusPending {
		query = query.Where("status IN ? OR status IS NULL", rawStatusSpellings(appointment.Status))
	} else {
		query = query.Where("status IN ?", rawStatusSpellings(appointment.Status))
	}
	result := query.Updates(updates)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		h.Log.Warn("appointment transition lost race",
			zap.String("appointment_id", appointment.ID),
			zap.String("action", string(action)))
		utils.Conflict(c, models.ErrStatusConflict.Error())
		return
	}

	h.Metrics.AppointmentsTotal.WithLabelValues(string(target)).Inc()

	title := fmt.Sprintf("Appointment %s", target)
	description := fmt.Sprintf("Your %s appointment for %s on %s is now %s.",
		appointment.Type, appointment.PetName, appointment.Date.Format("Jan 2, 2006"), target)
	if reason != "" {
		description += " Reason: " + reason
	}
	h.emitNotification(appointment.OwnerID, appointment.PetName, title, description)

	appointment.Status = target
	if action == models.ActionReject && reason != "" {
		appointment.RejectionReason = reason
	}
	utils.Success(c, "Appointment status updated successfully", appointment)
}

// rawStatusSpellings returns the raw column values that normalize to the
// given canonical status, for use in conditional writes. Pending also covers
// the empty string, which unrecognized legacy rows carry.
func rawStatusSpellings(status models.AppointmentStatus) []string {
	switch status {
	case models.StatusPending:
		return []string{string(models.StatusPending), ""}
	case models.StatusApproved:
		return []string{string(models.StatusApproved), "Confirmed"}
	case models.StatusRejected:
		return []string{string(models.StatusRejected), "Cancelled"}
	}
	return []string{string(status)}
}

// CallInfo is returned for an approved online appointment so the client can
// join the embedded video-call widget.
type CallInfo struct {
	RoomID string `json:"roomId"`
	Token  string `json:"token"`
}

// GetCallInfo issues a room id and a signed short-lived token for an online
// appointment. Only Approved online appointments accept a call; this is a
// side-effecting action, not a status transition.
func (h *AppointmentHandler) GetCallInfo(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	if !h.actorMaySee(c, appointment) {
		utils.Forbidden(c, "You are not authorized to join this appointment's call")
		return
	}

	if appointment.Status != models.StatusApproved || appointment.Mode != models.ModeOnline {
		utils.BadRequest(c, "Video calls are only available for approved online appointments")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userName, _ := middleware.GetUserNameFromContext(c)

	roomID := fmt.Sprintf("apt_%s_%s", appointment.ID, strings.ReplaceAll(appointment.VetName, " ", "_"))
	token, err := utils.GenerateRoomToken(roomID, userID, userName, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate room token: "+err.Error())
		return
	}

	utils.Success(c, "Call info generated successfully", CallInfo{RoomID: roomID, Token: token})
}

// loadAppointment fetches the appointment named in the :id param, writing the
// error response itself when it cannot.
func (h *AppointmentHandler) loadAppointment(c *gin.Context) (*models.Appointment, bool) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return &appointment, true
}

// actorMaySee applies the visibility rules for the authenticated actor.
func (h *AppointmentHandler) actorMaySee(c *gin.Context, appointment *models.Appointment) bool {
	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	userName, _ := middleware.GetUserNameFromContext(c)

	switch userRole {
	case models.RoleAdmin:
		return true
	case models.RoleVeterinarian:
		return appointment.VisibleToVet(userID, userName)
	default:
		return appointment.VisibleToOwner(userID)
	}
}

// emitNotification writes an appointment notification for a user. Failures
// are logged, not surfaced: the transition itself already committed.
func (h *AppointmentHandler) emitNotification(userID, petName, title, description string) {
	notification := models.Notification{
		UserID:      userID,
		Type:        models.NotificationAppointment,
		Title:       title,
		Description: description,
		PetName:     petName,
	}
	if err := h.DB.Create(&notification).Error; err != nil {
		h.Log.Warn("failed to write notification",
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}
	h.Metrics.NotificationsTotal.Inc()
}

// parseAppointmentDate accepts a calendar date or a full ISO 8601 timestamp.
func parseAppointmentDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
