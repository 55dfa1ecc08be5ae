package controllers

import (
	"errors"
	"strconv"

	"github.com/mhusainh/ScanDine-sub000/pkg/resp"
	"github.com/mhusainh/ScanDine-sub000/services"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	Tables  *services.TableService
	Catalog *services.CatalogService
}

func NewTableController(tables *services.TableService, catalog *services.CatalogService) *TableController {
	return &TableController{Tables: tables, Catalog: catalog}
}

// POST /tables — staff adds a table; the QR token is generated here.
func (tc *TableController) Create(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	t, err := tc.Tables.Create(req.Number)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"table": t, "qrUrl": tc.Tables.QRURL(t)})
}

// GET /tables — staff floor view with live occupancy.
func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.Tables.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": tables})
}

// GET /tables/:id/qr-url
func (tc *TableController) QRUrl(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid table id")
		return
	}

	t, err := tc.Tables.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			resp.NotFound(c, "table not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"qrUrl": tc.Tables.QRURL(t)})
}

// GET /t/:uuid/menu — the customer landing endpoint behind the QR code.
func (tc *TableController) Menu(c *gin.Context) {
	t, err := tc.Tables.GetByUuid(c.Param("uuid"))
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			resp.NotFound(c, "table not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	menu, err := tc.Catalog.ListMenu()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"table": gin.H{"number": t.Number, "uuid": t.Uuid},
		"menu":  menu,
	})
}
