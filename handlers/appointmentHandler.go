package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	ScheduleID     uint   `json:"scheduleId" binding:"required"`
	ReasonForVisit string `json:"reasonForVisit"`
}

// BookAppointment reserves a schedule slot for the authenticated user.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	principal, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), principal, req.ScheduleID, req.ReasonForVisit)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, appointment)
}

// CancelAppointment moves a booked appointment to cancelled and re-opens its slot.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	principal, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), principal, id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Appointment cancelled"})
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	appointments, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

// GetDoctorAppointments lists appointments for the doctor in the :id route param.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointments, err := h.service.GetForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, appointments)
}
