package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

// DashboardHandler aggregates headline counts for the admin dashboard.
type DashboardHandler struct {
	doctorService      *services.DoctorService
	appointmentService *services.AppointmentService
	medicationService  *services.MedicationService
}

func NewDashboardHandler(doctorService *services.DoctorService, appointmentService *services.AppointmentService, medicationService *services.MedicationService) *DashboardHandler {
	return &DashboardHandler{
		doctorService:      doctorService,
		appointmentService: appointmentService,
		medicationService:  medicationService,
	}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	doctorCount, err := h.doctorService.Count(ctx)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	appointmentCount, err := h.appointmentService.Count(ctx)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	medicationCount, err := h.medicationService.Count(ctx)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	lowStock, err := h.medicationService.GetLowStock(ctx)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	pendingOrders, err := h.medicationService.CountPendingOrders(ctx)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"totalDoctors":       doctorCount,
		"totalAppointments":  appointmentCount,
		"totalMedications":   medicationCount,
		"lowStockCount":      len(lowStock),
		"lowStockItems":      lowStock,
		"pendingOrdersCount": pendingOrders,
	})
}
