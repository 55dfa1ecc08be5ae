package controllers

import (
	"errors"
	"strconv"

	"github.com/mhusainh/ScanDine-sub000/entity"
	"github.com/mhusainh/ScanDine-sub000/pkg/resp"
	"github.com/mhusainh/ScanDine-sub000/services"
	"github.com/shopspring/decimal"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

func catalogErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrModifierGroupInUse):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrModifierSelectionInvalid):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ----- Categories -----

func (cc *CatalogController) CreateCategory(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		SortOrder int    `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat := entity.Category{Name: req.Name, SortOrder: req.SortOrder}
	if err := cc.Catalog.CreateCategory(&cat); err != nil {
		catalogErr(c, err)
		return
	}
	resp.Created(c, cat)
}

func (cc *CatalogController) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name      *string `json:"name"`
		SortOrder *int    `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	cat, err := cc.Catalog.UpdateCategory(id, updates)
	if err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, cat)
}

func (cc *CatalogController) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := cc.Catalog.DeleteCategory(id); err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// ----- Menu items -----

type menuItemReq struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"imageUrl"`
	IsAvailable *bool           `json:"isAvailable"`
	CategoryID  uint            `json:"categoryId" binding:"required"`
}

func (cc *CatalogController) CreateMenuItem(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	m := entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
		CategoryID:  req.CategoryID,
	}
	if err := cc.Catalog.CreateMenuItem(&m); err != nil {
		catalogErr(c, err)
		return
	}
	resp.Created(c, m)
}

func (cc *CatalogController) UpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		ImageURL    *string          `json:"imageUrl"`
		IsAvailable *bool            `json:"isAvailable"`
		CategoryID  *uint            `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	m, err := cc.Catalog.UpdateMenuItem(id, updates)
	if err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, m)
}

func (cc *CatalogController) DeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := cc.Catalog.DeleteMenuItem(id); err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// ----- Modifier groups & items -----

func (cc *CatalogController) CreateModifierGroup(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required"`
		IsRequired   bool   `json:"isRequired"`
		IsMultiple   bool   `json:"isMultiple"`
		MinSelection int    `json:"minSelection"`
		MaxSelection int    `json:"maxSelection"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.MaxSelection == 0 {
		req.MaxSelection = 1
	}
	g := entity.ModifierGroup{
		Name:         req.Name,
		IsRequired:   req.IsRequired,
		IsMultiple:   req.IsMultiple,
		MinSelection: req.MinSelection,
		MaxSelection: req.MaxSelection,
	}
	if err := cc.Catalog.CreateModifierGroup(&g); err != nil {
		catalogErr(c, err)
		return
	}
	resp.Created(c, g)
}

func (cc *CatalogController) UpdateModifierGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name         *string `json:"name"`
		IsRequired   *bool   `json:"isRequired"`
		IsMultiple   *bool   `json:"isMultiple"`
		MinSelection *int    `json:"minSelection"`
		MaxSelection *int    `json:"maxSelection"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.IsRequired != nil {
		updates["is_required"] = *req.IsRequired
	}
	if req.IsMultiple != nil {
		updates["is_multiple"] = *req.IsMultiple
	}
	if req.MinSelection != nil {
		updates["min_selection"] = *req.MinSelection
	}
	if req.MaxSelection != nil {
		updates["max_selection"] = *req.MaxSelection
	}
	g, err := cc.Catalog.UpdateModifierGroup(id, updates)
	if err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, g)
}

func (cc *CatalogController) DeleteModifierGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := cc.Catalog.DeleteModifierGroup(id); err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

func (cc *CatalogController) CreateModifierItem(c *gin.Context) {
	var req struct {
		ModifierGroupID uint            `json:"modifierGroupId" binding:"required"`
		Name            string          `json:"name" binding:"required"`
		Price           decimal.Decimal `json:"price"`
		IsAvailable     *bool           `json:"isAvailable"`
		SortOrder       int             `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	mi := entity.ModifierItem{
		ModifierGroupID: req.ModifierGroupID,
		Name:            req.Name,
		Price:           req.Price,
		IsAvailable:     available,
		SortOrder:       req.SortOrder,
	}
	if err := cc.Catalog.CreateModifierItem(&mi); err != nil {
		catalogErr(c, err)
		return
	}
	resp.Created(c, mi)
}

func (cc *CatalogController) UpdateModifierItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string          `json:"name"`
		Price       *decimal.Decimal `json:"price"`
		IsAvailable *bool            `json:"isAvailable"`
		SortOrder   *int             `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	mi, err := cc.Catalog.UpdateModifierItem(id, updates)
	if err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, mi)
}

func (cc *CatalogController) DeleteModifierItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := cc.Catalog.DeleteModifierItem(id); err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// POST /menu-items/:id/modifier-groups
func (cc *CatalogController) AttachModifierGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		ModifierGroupID uint `json:"modifierGroupId" binding:"required"`
		SortOrder       int  `json:"sortOrder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := cc.Catalog.AttachModifierGroup(id, req.ModifierGroupID, req.SortOrder); err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, gin.H{"attached": req.ModifierGroupID})
}

// DELETE /menu-items/:id/modifier-groups/:groupId
func (cc *CatalogController) DetachModifierGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	groupID, err := strconv.Atoi(c.Param("groupId"))
	if err != nil || groupID <= 0 {
		resp.BadRequest(c, "invalid group id")
		return
	}
	if err := cc.Catalog.DetachModifierGroup(id, uint(groupID)); err != nil {
		catalogErr(c, err)
		return
	}
	resp.OK(c, gin.H{"detached": groupID})
}
