package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/serializer"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

type AssetHandler struct {
	svc service.AssetService
}

func NewAssetHandler(svc service.AssetService) *AssetHandler {
	return &AssetHandler{svc: svc}
}

func parseSiteAndCategory(c *gin.Context) (uuid.UUID, model.Category, bool) {
	siteID, err := uuid.Parse(c.Param("site_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid site id", err))
		return uuid.Nil, "", false
	}
	category := model.Category(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("unknown category", nil))
		return uuid.Nil, "", false
	}
	return siteID, category, true
}

// SiteAssets godoc
//
//	@Summary		All assets of a site
//	@Description	Fetches all five category tables in parallel, ordered by survey date descending.
//	@Tags			asset
//	@Produce		json
//	@Param			site_id	path	string	true	"Site ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.SiteAssets}
//	@Router			/sites/{site_id}/assets [get]
func (h *AssetHandler) SiteAssets(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("site_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid site id", err))
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), siteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: overview})
}

// ListAssets godoc
//
//	@Summary		Assets of one category
//	@Tags			asset
//	@Produce		json
//	@Param			site_id		path	string	true	"Site ID"	Format(uuid)
//	@Param			category	path	string	true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.AssetRow}
//	@Router			/sites/{site_id}/assets/{category} [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	siteID, category, ok := parseSiteAndCategory(c)
	if !ok {
		return
	}

	rows, err := h.svc.List(c.Request.Context(), category, siteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: rows})
}

type CreateAssetReq struct {
	SurveyDate    string `json:"survey_date"`
	EquipmentType string `json:"equipment_type"`
	ProductName   string `json:"product_name"`
	ProductNumber string `json:"product_number"`
	SerialNumber  string `json:"serial_number"`
	TagNumber     string `json:"tag_number"`
	TagStatus     string `json:"tag_status"`
	Remarks       string `json:"remarks"`
}

// CreateAsset godoc
//
//	@Summary		Add an asset row
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			site_id		path	string					true	"Site ID"	Format(uuid)
//	@Param			category	path	string					true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Param			body		body	handler.CreateAssetReq	true	"Row fields"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.AssetRow}
//	@Router			/sites/{site_id}/assets/{category} [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	siteID, category, ok := parseSiteAndCategory(c)
	if !ok {
		return
	}

	req := CreateAssetReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	row := &model.AssetRow{
		SiteID:        siteID,
		SurveyDate:    req.SurveyDate,
		EquipmentType: req.EquipmentType,
		ProductName:   req.ProductName,
		ProductNumber: req.ProductNumber,
		SerialNumber:  req.SerialNumber,
		TagNumber:     req.TagNumber,
		TagStatus:     req.TagStatus,
		Remarks:       req.Remarks,
	}

	created, err := h.svc.Create(c.Request.Context(), category, row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: created})
}

// SaveAsset godoc
//
//	@Summary		Save draft fields
//	@Description	Persists exactly the submitted fields of a row; everything else round-trips unchanged.
//	@Tags			asset
//	@Accept			json
//	@Produce		json
//	@Param			site_id		path	string				true	"Site ID"	Format(uuid)
//	@Param			category	path	string				true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Param			asset_id	path	string				true	"Asset ID"	Format(uuid)
//	@Param			body		body	map[string]string	true	"Draft fields keyed by JSON field name"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.AssetRow}
//	@Router			/sites/{site_id}/assets/{category}/{asset_id} [patch]
func (h *AssetHandler) SaveAsset(c *gin.Context) {
	siteID, category, ok := parseSiteAndCategory(c)
	if !ok {
		return
	}
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset id", err))
		return
	}

	fields := map[string]interface{}{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	row, err := h.svc.Save(c.Request.Context(), category, siteID, assetID, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: row})
}
