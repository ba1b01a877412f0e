package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/serializer"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

type LookupHandler struct {
	svc service.LookupService
}

func NewLookupHandler(svc service.LookupService) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// EquipmentTypes godoc
//
//	@Summary		Equipment type options
//	@Description	Distinct equipment types for a category. A current value not present in the list is appended so legacy free-text values still display.
//	@Tags			lookup
//	@Produce		json
//	@Param			category	query	string	true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Param			current		query	string	false	"Currently selected value"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]string}
//	@Router			/lookups/equipment-types [get]
func (h *LookupHandler) EquipmentTypes(c *gin.Context) {
	category := model.Category(c.Query("category"))
	values, err := h.svc.EquipmentTypes(c.Request.Context(), category, c.Query("current"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: values})
}

// ProductNames godoc
//
//	@Summary		Product name options
//	@Tags			lookup
//	@Produce		json
//	@Param			category		query	string	true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Param			equipment_type	query	string	true	"Upstream equipment type; empty yields an empty list"
//	@Param			current			query	string	false	"Currently selected value"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]string}
//	@Router			/lookups/product-names [get]
func (h *LookupHandler) ProductNames(c *gin.Context) {
	category := model.Category(c.Query("category"))
	values, err := h.svc.ProductNames(c.Request.Context(), category, c.Query("equipment_type"), c.Query("current"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: values})
}

// TagStatuses godoc
//
//	@Summary		Tag status options
//	@Tags			lookup
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]string}
//	@Router			/lookups/tag-statuses [get]
func (h *LookupHandler) TagStatuses(c *gin.Context) {
	values, err := h.svc.TagStatuses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: values})
}

type ProductNumberResp struct {
	ProductNumber string `json:"product_number"`
}

// ProductNumber godoc
//
//	@Summary		Auto-fill product number
//	@Description	Catalog lookup scoped by category and equipment type, retried unfiltered if the scoped query errors.
//	@Tags			lookup
//	@Produce		json
//	@Param			category		query	string	true	"Category"	Enums(antenna, radio, transmission, power, ancillary)
//	@Param			equipment_type	query	string	false	"Equipment type"
//	@Param			product_name	query	string	true	"Product name"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.ProductNumberResp}
//	@Router			/catalog/product-number [get]
func (h *LookupHandler) ProductNumber(c *gin.Context) {
	category := model.Category(c.Query("category"))
	number, err := h.svc.ProductNumber(c.Request.Context(), category, c.Query("equipment_type"), c.Query("product_name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("product number lookup failed", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: ProductNumberResp{ProductNumber: number}})
}

type CascadeReq struct {
	Selection service.Selection    `json:"selection"`
	Changed   service.CascadeField `json:"changed" binding:"required"`
}

// Cascade godoc
//
//	@Summary		Resolve the dropdown cascade
//	@Description	Clears every selection downstream of the changed field, then returns the valid option lists. Lookup failures degrade to empty lists plus a warning.
//	@Tags			lookup
//	@Accept			json
//	@Produce		json
//	@Param			body	body	handler.CascadeReq	true	"Current selection and the changed field"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.CascadeResult}
//	@Router			/lookups/cascade [post]
func (h *LookupHandler) Cascade(c *gin.Context) {
	req := CascadeReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	result, err := h.svc.Cascade(c.Request.Context(), req.Selection, req.Changed)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: result})
}
