package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service *services.ScheduleService
}

func NewScheduleHandler(service *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var schedule models.Schedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Add(c.Request.Context(), &schedule); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, schedule)
}

func (h *ScheduleHandler) GetScheduleByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	schedule, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, schedule)
}

func (h *ScheduleHandler) GetAllSchedules(c *gin.Context) {
	schedules, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, schedules)
}

// GetDoctorSchedule lists slots for the doctor in the :id route param.
func (h *ScheduleHandler) GetDoctorSchedule(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	schedules, err := h.service.GetDoctorSchedule(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, schedules)
}

// FindAvailable searches open slots. Query params: date (required,
// YYYY-MM-DD), doctor_id and specialization (both optional).
func (h *ScheduleHandler) FindAvailable(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(400, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	var doctorID uint
	if idStr := c.Query("doctor_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid doctor_id"})
			return
		}
		doctorID = uint(id)
	}

	schedules, err := h.service.FindAvailable(c.Request.Context(), date, doctorID, c.Query("specialization"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, schedules)
}

func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Schedule deleted"})
}
