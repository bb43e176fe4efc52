package main

import (
	"github.com/gin-gonic/gin"

	"vols_gis/backend/models"
	"vols_gis/backend/store"
)

func (a *app) inventoryTotals() (store.Totals, float64, error) {
	totals, err := store.CountTotals(a.db)
	if err != nil {
		return store.Totals{}, 0, err
	}
	totalLength, err := store.SumVolsLength(a.db)
	if err != nil {
		return store.Totals{}, 0, err
	}
	return totals, totalLength, nil
}

// statsDashboard aggregates the whole inventory for the dashboard view.
func (a *app) statsDashboard(c *gin.Context) {
	totals, totalLength, err := a.inventoryTotals()
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	nodesByStatus, err := store.CountByColumn(a.db, &models.Node{}, "status")
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	nodesByType, err := store.CountByColumn(a.db, &models.Node{}, "node_type")
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	volsByStatus, err := store.CountByColumn(a.db, &models.Vols{}, "status")
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	fibersByStatus, err := store.CountByColumn(a.db, &models.Fiber{}, "status")
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	fibersByVols, err := store.CountByForeignKey(a.db, &models.Fiber{}, "vols_id")
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	linksByStatus, err := store.CountByColumn(a.db, &models.Link{}, "status")
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	linksByNode, err := store.CountByForeignKey(a.db, &models.Link{}, "start_node_id")
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	c.JSON(200, gin.H{
		"summary": gin.H{
			"total_nodes":     totals.Nodes,
			"total_vols":      totals.Vols,
			"total_fibers":    totals.Fibers,
			"total_links":     totals.Links,
			"total_length_km": totalLength,
		},
		"nodes": gin.H{
			"by_status": nodesByStatus,
			"by_type":   nodesByType,
		},
		"vols": gin.H{
			"by_status":       volsByStatus,
			"total_length_km": totalLength,
		},
		"fibers": gin.H{
			"by_status": fibersByStatus,
			"by_vols":   fibersByVols,
		},
		"links": gin.H{
			"by_status": linksByStatus,
			"by_node":   linksByNode,
		},
	})
}

// statsSummary answers just the entity counts and the total route length,
// keyed by the bare entity names unlike the dashboard's summary block.
func (a *app) statsSummary(c *gin.Context) {
	totals, totalLength, err := a.inventoryTotals()
	if err != nil {
		storeError(c, err, "stats")
		return
	}
	c.JSON(200, gin.H{
		"nodes":           totals.Nodes,
		"vols":            totals.Vols,
		"fibers":          totals.Fibers,
		"links":           totals.Links,
		"total_length_km": totalLength,
	})
}
