package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/serializer"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

type SiteHandler struct {
	svc service.SiteService
}

func NewSiteHandler(svc service.SiteService) *SiteHandler {
	return &SiteHandler{svc: svc}
}

// SearchSites godoc
//
//	@Summary		Search sites
//	@Description	Match sites by name or code. An empty query returns an empty list.
//	@Tags			site
//	@Produce		json
//	@Param			q	query	string	false	"Search text"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Site}
//	@Router			/sites [get]
func (h *SiteHandler) SearchSites(c *gin.Context) {
	sites, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: sites})
}

// GetSite godoc
//
//	@Summary		Get site
//	@Tags			site
//	@Produce		json
//	@Param			site_id	path	string	true	"Site ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Site}
//	@Router			/sites/{site_id} [get]
func (h *SiteHandler) GetSite(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("site_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	site, err := h.svc.Get(c.Request.Context(), siteID)
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.DBErr("site not found", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: site})
}
