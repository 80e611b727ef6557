package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"ClinicFlow/services"

	"github.com/gin-gonic/gin"
)

type MedicationHandler struct {
	service *services.MedicationService
}

func NewMedicationHandler(service *services.MedicationService) *MedicationHandler {
	return &MedicationHandler{service: service}
}

func (h *MedicationHandler) SaveMedication(c *gin.Context) {
	var medication models.Medication
	if err := c.ShouldBindJSON(&medication); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Save(c.Request.Context(), &medication); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(201, medication)
}

func (h *MedicationHandler) GetMedicationByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	medication, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, medication)
}

func (h *MedicationHandler) GetAllMedications(c *gin.Context) {
	medications, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, medications)
}

func (h *MedicationHandler) GetLowStockMedications(c *gin.Context) {
	medications, err := h.service.GetLowStock(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, medications)
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustStock applies a signed quantity delta to a medication.
func (h *MedicationHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	medication, err := h.service.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, medication)
}

func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Medication deleted"})
}

func (h *MedicationHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.service.GetOrders(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, orders)
}

func (h *MedicationHandler) GetMedicationOrders(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	orders, err := h.service.GetOrdersForMedication(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(200, orders)
}
