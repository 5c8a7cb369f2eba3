package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/services"
)

// DataController exposes the reconciliation engine: snapshot export,
// merging import and factory reset.
type DataController struct {
	reconciler *services.Reconciler
}

func NewDataController(reconciler *services.Reconciler) *DataController {
	return &DataController{reconciler: reconciler}
}

// ExportData returns a full snapshot of every table
// GET /api/export
func (dc *DataController) ExportData(c *gin.Context) {
	snapshot, err := dc.reconciler.Export()
	if err != nil {
		respondInternalError(c, err, "export data")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ImportData merges a snapshot into the store. Reference rows dedup by
// name; the whole import is a single failure unit and any error leaves
// the store untouched.
// POST /api/import
func (dc *DataController) ImportData(c *gin.Context) {
	var snapshot services.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		respondBadRequest(c, "no data provided")
		return
	}

	if err := dc.reconciler.Import(&snapshot); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, "Data imported successfully")
}

// ClearData performs the factory reset, preserving theme and profile
// POST /api/clear
func (dc *DataController) ClearData(c *gin.Context) {
	if err := dc.reconciler.ClearAll(); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondSuccess(c, "All data cleared except defaults and profile")
}
