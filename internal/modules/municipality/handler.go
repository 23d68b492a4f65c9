package municipality

import (
	"net/http"

	"wastebooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/municipalities", h.GetMunicipalities)
}

func (h *Handler) GetMunicipalities(c *gin.Context) {
	list, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "MUNICIPALITY_SOURCE_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, list)
}
