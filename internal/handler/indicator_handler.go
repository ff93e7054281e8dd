package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/response"
)

// IndicatorHandler handles ACI indicator endpoints.
type IndicatorHandler struct {
	indicators *service.IndicatorService
	missions   *service.MissionService
}

// NewIndicatorHandler constructs an indicator handler.
func NewIndicatorHandler(indicators *service.IndicatorService, missions *service.MissionService) *IndicatorHandler {
	return &IndicatorHandler{indicators: indicators, missions: missions}
}

// List godoc
// @Summary List indicators
// @Tags Indicators
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /indicators [get]
func (h *IndicatorHandler) List(c *gin.Context) {
	indicators, err := h.indicators.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, indicators)
}

// Get godoc
// @Summary Get indicator by id
// @Tags Indicators
// @Produce json
// @Param id path int true "Indicator ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /indicators/{id} [get]
func (h *IndicatorHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	indicator, err := h.indicators.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, indicator)
}

// Create godoc
// @Summary Create indicator
// @Tags Indicators
// @Accept json
// @Produce json
// @Param payload body service.CreateIndicatorRequest true "Indicator payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /indicators [post]
func (h *IndicatorHandler) Create(c *gin.Context) {
	var req service.CreateIndicatorRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	indicator, err := h.indicators.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, indicator)
}

// Update godoc
// @Summary Partially update indicator
// @Tags Indicators
// @Accept json
// @Produce json
// @Param id path int true "Indicator ID"
// @Param payload body service.UpdateIndicatorRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /indicators/{id} [patch]
func (h *IndicatorHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateIndicatorRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	indicator, err := h.indicators.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, indicator)
}

// Missions godoc
// @Summary List missions attached to an indicator
// @Tags Indicators
// @Produce json
// @Param id path int true "Indicator ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /indicators/{id}/missions [get]
func (h *IndicatorHandler) Missions(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	missions, err := h.missions.ListByIndicator(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, missions)
}
