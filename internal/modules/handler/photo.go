package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/serializer"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

type PhotoHandler struct {
	svc service.PhotoService
}

func NewPhotoHandler(svc service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// AttachPhoto godoc
//
//	@Summary		Attach a photo
//	@Description	Uploads serial/tag evidence for an asset and appends a metadata record. Re-uploading the same type overwrites the stored object but keeps both records.
//	@Tags			photo
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			site_id		path		string	true	"Site ID"	Format(uuid)
//	@Param			category	path		string	true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Param			asset_id	path		string	true	"Asset ID"	Format(uuid)
//	@Param			type		formData	string	true	"Photo type"	Enums(serial, tag)
//	@Param			file		formData	file	true	"Image file"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.AssetPhoto}
//	@Router			/sites/{site_id}/assets/{category}/{asset_id}/photos [post]
func (h *PhotoHandler) AttachPhoto(c *gin.Context) {
	siteID, category, ok := parseSiteAndCategory(c)
	if !ok {
		return
	}
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset id", err))
		return
	}

	photoType := model.PhotoType(c.PostForm("type"))
	if !photoType.Valid() {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("photo type must be serial or tag", nil))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("file is required", err))
		return
	}

	photo, err := h.svc.Attach(c.Request.Context(), category, siteID, assetID, photoType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.StoreErr("", err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: photo})
}

// SitePhotoMap godoc
//
//	@Summary		Photo map for a site
//	@Description	All photos of the site grouped by owning asset ("table:assetID" keys), each with a presigned URL valid one hour. URLs are computed per fetch.
//	@Tags			photo
//	@Produce		json
//	@Param			site_id	path	string	true	"Site ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.PhotoMap}
//	@Router			/sites/{site_id}/photos [get]
func (h *PhotoHandler) SitePhotoMap(c *gin.Context) {
	siteID, err := uuid.Parse(c.Param("site_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid site id", err))
		return
	}

	photoMap, err := h.svc.SiteMap(c.Request.Context(), siteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: photoMap})
}

// AssetPhotos godoc
//
//	@Summary		Photos of one asset
//	@Tags			photo
//	@Produce		json
//	@Param			site_id		path	string	true	"Site ID"	Format(uuid)
//	@Param			category	path	string	true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Param			asset_id	path	string	true	"Asset ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.AssetPhoto}
//	@Router			/sites/{site_id}/assets/{category}/{asset_id}/photos [get]
func (h *PhotoHandler) AssetPhotos(c *gin.Context) {
	_, category, ok := parseSiteAndCategory(c)
	if !ok {
		return
	}
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid asset id", err))
		return
	}

	photos, err := h.svc.ListByAsset(c.Request.Context(), category, assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: photos})
}
