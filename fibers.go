package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"vols_gis/backend/models"
	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

func (a *app) listFibers(c *gin.Context) {
	filter := store.FiberFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if q := c.Query("vols_id"); q != "" {
		id, ok := parseQueryID(c, "vols_id")
		if !ok {
			return
		}
		filter.VolsID = &id
	}
	fibers, err := store.ListFibers(a.db, filter)
	if err != nil {
		storeError(c, err, "fibers")
		return
	}
	c.JSON(200, gin.H{"fibers": fibers, "count": len(fibers)})
}

func (a *app) createFiber(c *gin.Context) {
	var sch schemas.FiberCreate
	if !bindCreate(c, &sch) {
		return
	}
	fiber := models.Fiber{
		Name:       sch.Name,
		CableType:  sch.CableType,
		FiberCount: sch.FiberCount,
		Status:     sch.Status,
		VolsID:     sch.VolsID,
		MetaData:   datatypes.JSONMap(sch.MetaData),
	}
	if err := store.CreateFiber(a.db, &fiber); err != nil {
		storeError(c, err, "fiber")
		return
	}
	c.JSON(201, gin.H{"fiber": fiber})
}

func (a *app) getFiber(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	fiber, err := store.GetFiber(a.db, id)
	if err != nil {
		storeError(c, err, "fiber")
		return
	}
	c.JSON(200, gin.H{"fiber": fiber})
}

func (a *app) updateFiber(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var sch schemas.FiberUpdate
	presence, ok := bindUpdate(c, &sch)
	if !ok {
		return
	}
	changes, err := sch.Changes(presence)
	if err != nil {
		fail(c, 400, kindValidation, err.Error())
		return
	}
	fiber, err := store.UpdateFiber(a.db, id, changes)
	if err != nil {
		storeError(c, err, "fiber")
		return
	}
	c.JSON(200, gin.H{"fiber": fiber})
}

func (a *app) deleteFiber(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := store.DeleteFiber(a.db, id); err != nil {
		storeError(c, err, "fiber")
		return
	}
	c.JSON(200, gin.H{"message": "fiber deleted"})
}

// fibersByVols lists the fiber bundles assigned to one route.
func (a *app) fibersByVols(c *gin.Context) {
	volsID, ok := parseID(c, "vols_id")
	if !ok {
		return
	}
	fibers, err := store.ListFibers(a.db, store.FiberFilter{VolsID: &volsID})
	if err != nil {
		storeError(c, err, "fibers")
		return
	}
	c.JSON(200, gin.H{"fibers": fibers, "count": len(fibers)})
}
