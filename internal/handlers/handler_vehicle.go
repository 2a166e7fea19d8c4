package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/dto"
	"github.com/SscSPs/courier_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type vehicleHandler struct {
	vehicleService portssvc.VehicleSvcFacade
}

func registerVehicleRoutes(rg *gin.RouterGroup, vehicleService portssvc.VehicleSvcFacade) {
	h := &vehicleHandler{vehicleService: vehicleService}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("/:vehicleID", h.getVehicle)
		vehicles.PUT("/:vehicleID", h.updateVehicle)
	}
}

// createVehicle godoc
// @Summary Register a vehicle
// @Tags vehicles
// @Accept  json
// @Produce  json
// @Param   vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown reference"
// @Failure 409 {object} map[string]string "Registration or RC number already in use"
// @Failure 500 {object} map[string]string "Failed to create vehicle"
// @Security BearerAuth
// @Router /vehicles [post]
func (h *vehicleHandler) createVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create vehicle")
		return
	}

	logger.Info("Vehicle registered", slog.String("vehicle_id", vehicle.VehicleID))
	c.JSON(http.StatusCreated, dto.ToVehicleResponse(vehicle))
}

// getVehicle godoc
// @Summary Get a vehicle
// @Tags vehicles
// @Produce  json
// @Param   vehicleID path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Failed to retrieve vehicle"
// @Security BearerAuth
// @Router /vehicles/{vehicleID} [get]
func (h *vehicleHandler) getVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicleID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("vehicle_id", vehicleID))

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve vehicle")
		return
	}
	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// updateVehicle godoc
// @Summary Update a vehicle
// @Tags vehicles
// @Accept  json
// @Produce  json
// @Param   vehicleID path string true "Vehicle ID"
// @Param   vehicle body dto.UpdateVehicleRequest true "Fields to change"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 409 {object} map[string]string "Registration or RC number already in use"
// @Failure 500 {object} map[string]string "Failed to update vehicle"
// @Security BearerAuth
// @Router /vehicles/{vehicleID} [put]
func (h *vehicleHandler) updateVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicleID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("vehicle_id", vehicleID))
	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVehicle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), vehicleID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update vehicle")
		return
	}
	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}
