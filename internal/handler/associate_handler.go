package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/response"
)

// AssociateHandler handles associate endpoints.
type AssociateHandler struct {
	associates *service.AssociateService
	missions   *service.MissionService
}

// NewAssociateHandler constructs an associate handler.
func NewAssociateHandler(associates *service.AssociateService, missions *service.MissionService) *AssociateHandler {
	return &AssociateHandler{associates: associates, missions: missions}
}

// List godoc
// @Summary List associates
// @Tags Associates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /associates [get]
func (h *AssociateHandler) List(c *gin.Context) {
	associates, err := h.associates.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, associates)
}

// Get godoc
// @Summary Get associate by id
// @Tags Associates
// @Produce json
// @Param id path int true "Associate ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /associates/{id} [get]
func (h *AssociateHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	associate, err := h.associates.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, associate)
}

// Create godoc
// @Summary Create associate
// @Tags Associates
// @Accept json
// @Produce json
// @Param payload body service.CreateAssociateRequest true "Associate payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /associates [post]
func (h *AssociateHandler) Create(c *gin.Context) {
	var req service.CreateAssociateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	associate, err := h.associates.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, associate)
}

// Update godoc
// @Summary Partially update associate
// @Tags Associates
// @Accept json
// @Produce json
// @Param id path int true "Associate ID"
// @Param payload body service.UpdateAssociateRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /associates/{id} [patch]
func (h *AssociateHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateAssociateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	associate, err := h.associates.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, associate)
}

// Delete godoc
// @Summary Delete associate
// @Description Missions of the associate are kept.
// @Tags Associates
// @Param id path int true "Associate ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /associates/{id} [delete]
func (h *AssociateHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.associates.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Missions godoc
// @Summary List missions assigned to an associate
// @Tags Associates
// @Produce json
// @Param id path int true "Associate ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /associates/{id}/missions [get]
func (h *AssociateHandler) Missions(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	missions, err := h.missions.ListByAssociate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, missions)
}
