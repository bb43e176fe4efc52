package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"vols_gis/backend/models"
	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

func (a *app) listLinks(c *gin.Context) {
	filter := store.LinkFilter{Status: c.Query("status")}
	if q := c.Query("fiber_id"); q != "" {
		id, ok := parseQueryID(c, "fiber_id")
		if !ok {
			return
		}
		filter.FiberID = &id
	}
	links, err := store.ListLinks(a.db, filter)
	if err != nil {
		storeError(c, err, "links")
		return
	}
	c.JSON(200, gin.H{"links": links, "count": len(links)})
}

func (a *app) createLink(c *gin.Context) {
	var sch schemas.LinkCreate
	if !bindCreate(c, &sch) {
		return
	}
	link := models.Link{
		FiberID:      *sch.FiberID,
		StartNodeID:  *sch.StartNodeID,
		EndNodeID:    *sch.EndNodeID,
		StartPort:    sch.StartPort,
		EndPort:      sch.EndPort,
		Status:       sch.Status,
		CapacityGbps: sch.CapacityGbps,
		MetaData:     datatypes.JSONMap(sch.MetaData),
	}
	if err := store.CreateLink(a.db, &link); err != nil {
		storeError(c, err, "link")
		return
	}
	c.JSON(201, gin.H{"link": link})
}

func (a *app) getLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	link, err := store.GetLink(a.db, id)
	if err != nil {
		storeError(c, err, "link")
		return
	}
	c.JSON(200, gin.H{"link": link})
}

func (a *app) updateLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var sch schemas.LinkUpdate
	presence, ok := bindUpdate(c, &sch)
	if !ok {
		return
	}
	changes, err := sch.Changes(presence)
	if err != nil {
		fail(c, 400, kindValidation, err.Error())
		return
	}
	link, err := store.UpdateLink(a.db, id, changes)
	if err != nil {
		storeError(c, err, "link")
		return
	}
	c.JSON(200, gin.H{"link": link})
}

func (a *app) deleteLink(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := store.DeleteLink(a.db, id); err != nil {
		storeError(c, err, "link")
		return
	}
	c.JSON(200, gin.H{"message": "link deleted"})
}

// searchLinks filters by fiber or by node, where a node id matches either
// endpoint of the link.
func (a *app) searchLinks(c *gin.Context) {
	filter := store.LinkFilter{}
	if q := c.Query("fiber_id"); q != "" {
		id, ok := parseQueryID(c, "fiber_id")
		if !ok {
			return
		}
		filter.FiberID = &id
	}
	if q := c.Query("node_id"); q != "" {
		id, ok := parseQueryID(c, "node_id")
		if !ok {
			return
		}
		filter.NodeID = &id
	}
	links, err := store.ListLinks(a.db, filter)
	if err != nil {
		storeError(c, err, "links")
		return
	}
	c.JSON(200, gin.H{"links": links, "count": len(links)})
}
