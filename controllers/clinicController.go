package controllers

import (
	"ClinicFlow/handlers"
	"ClinicFlow/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the doctor, schedule, appointment, medication
// and dashboard routes. All of them require an authenticated staff user;
// destructive doctor and medication operations require the Admin role.
func SetupClinicRoutes(router *gin.Engine, doctorHandler *handlers.DoctorHandler, scheduleHandler *handlers.ScheduleHandler, appointmentHandler *handlers.AppointmentHandler, medicationHandler *handlers.MedicationHandler, dashboardHandler *handlers.DashboardHandler) {
	staff := router.Group("/", middlewares.TokenAuthMiddleware())

	admin := staff.Group("/", middlewares.RoleAuthMiddleware("Admin"))

	staff.GET("/doctors", doctorHandler.GetAllDoctors)
	staff.GET("/doctors/:id", doctorHandler.GetDoctorByID)
	admin.POST("/doctors", doctorHandler.CreateDoctor)
	admin.PUT("/doctors/:id", doctorHandler.UpdateDoctor)
	admin.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)

	staff.GET("/schedules", scheduleHandler.GetAllSchedules)
	staff.GET("/schedules/available", scheduleHandler.FindAvailable)
	staff.GET("/schedules/:id", scheduleHandler.GetScheduleByID)
	staff.GET("/doctors/:id/schedules", scheduleHandler.GetDoctorSchedule)
	staff.POST("/schedules", scheduleHandler.CreateSchedule)
	admin.DELETE("/schedules/:id", scheduleHandler.DeleteSchedule)

	staff.POST("/appointments", appointmentHandler.BookAppointment)
	staff.POST("/appointments/:id/cancel", appointmentHandler.CancelAppointment)
	staff.GET("/appointments", appointmentHandler.GetAllAppointments)
	staff.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
	staff.GET("/doctors/:id/appointments", appointmentHandler.GetDoctorAppointments)

	staff.GET("/medications", medicationHandler.GetAllMedications)
	staff.GET("/medications/low-stock", medicationHandler.GetLowStockMedications)
	staff.GET("/medications/:id", medicationHandler.GetMedicationByID)
	staff.POST("/medications", medicationHandler.SaveMedication)
	staff.PUT("/medications/:id/stock", medicationHandler.AdjustStock)
	admin.DELETE("/medications/:id", medicationHandler.DeleteMedication)

	staff.GET("/medication-orders", medicationHandler.GetAllOrders)
	staff.GET("/medications/:id/orders", medicationHandler.GetMedicationOrders)

	staff.GET("/dashboard", dashboardHandler.GetDashboard)
}
