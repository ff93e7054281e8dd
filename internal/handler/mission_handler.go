package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/response"
)

// MissionHandler handles mission endpoints.
type MissionHandler struct {
	service *service.MissionService
}

// NewMissionHandler constructs a mission handler.
func NewMissionHandler(svc *service.MissionService) *MissionHandler {
	return &MissionHandler{service: svc}
}

// List godoc
// @Summary List missions
// @Tags Missions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /missions [get]
func (h *MissionHandler) List(c *gin.Context) {
	missions, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, missions)
}

// Get godoc
// @Summary Get mission by id
// @Tags Missions
// @Produce json
// @Param id path int true "Mission ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /missions/{id} [get]
func (h *MissionHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	mission, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mission)
}

// Create godoc
// @Summary Create mission
// @Tags Missions
// @Accept json
// @Produce json
// @Param payload body service.CreateMissionRequest true "Mission payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /missions [post]
func (h *MissionHandler) Create(c *gin.Context) {
	var req service.CreateMissionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	mission, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mission)
}

// Update godoc
// @Summary Partially update mission
// @Tags Missions
// @Accept json
// @Produce json
// @Param id path int true "Mission ID"
// @Param payload body service.UpdateMissionRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /missions/{id} [patch]
func (h *MissionHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateMissionRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	mission, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mission)
}

// Delete godoc
// @Summary Delete mission
// @Tags Missions
// @Param id path int true "Mission ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /missions/{id} [delete]
func (h *MissionHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
