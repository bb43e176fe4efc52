package main

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"vols_gis/backend/geometry"
	"vols_gis/backend/models"
	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

// nodeResponse is the API shape of a node: all attributes plus the decoded
// position as named lat/lon fields. The WKB column itself never serializes.
type nodeResponse struct {
	models.Node
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func nodeOut(n models.Node) (nodeResponse, error) {
	lat, lon, err := geometry.StorageToPoint(n.Geom)
	if err != nil {
		return nodeResponse{}, err
	}
	return nodeResponse{Node: n, Lat: lat, Lon: lon}, nil
}

func nodesOut(nodes []models.Node) []nodeResponse {
	out := make([]nodeResponse, 0, len(nodes))
	for _, n := range nodes {
		r, err := nodeOut(n)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (a *app) listNodes(c *gin.Context) {
	filter := store.NodeFilter{
		Status:   c.Query("status"),
		NodeType: c.Query("node_type"),
		Search:   c.Query("search"),
	}
	nodes, err := store.ListNodes(a.db, filter)
	if err != nil {
		storeError(c, err, "nodes")
		return
	}
	out := nodesOut(nodes)
	c.JSON(200, gin.H{"nodes": out, "count": len(out)})
}

func (a *app) createNode(c *gin.Context) {
	var sch schemas.NodeCreate
	if !bindCreate(c, &sch) {
		return
	}
	geom, err := geometry.PointToStorage(*sch.Lat, *sch.Lon)
	if err != nil {
		fail(c, 500, kindInternal, "failed to encode geometry")
		return
	}
	node := models.Node{
		Name:        sch.Name,
		Description: sch.Description,
		NodeType:    sch.NodeType,
		Status:      sch.Status,
		Geom:        geom,
		MetaData:    datatypes.JSONMap(sch.MetaData),
	}
	if err := store.CreateNode(a.db, &node); err != nil {
		storeError(c, err, "node")
		return
	}
	out, err := nodeOut(node)
	if err != nil {
		fail(c, 500, kindInternal, "failed to decode geometry")
		return
	}
	c.JSON(201, gin.H{"node": out})
}

func (a *app) getNode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	node, err := store.GetNode(a.db, id)
	if err != nil {
		storeError(c, err, "node")
		return
	}
	out, err := nodeOut(node)
	if err != nil {
		fail(c, 500, kindInternal, "failed to decode geometry")
		return
	}
	c.JSON(200, gin.H{"node": out})
}

func (a *app) updateNode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var sch schemas.NodeUpdate
	presence, ok := bindUpdate(c, &sch)
	if !ok {
		return
	}
	changes, err := sch.Changes(presence)
	if err != nil {
		fail(c, 400, kindValidation, err.Error())
		return
	}
	// moving the point requires both coordinates in the payload
	if sch.Lat != nil && sch.Lon != nil {
		geom, err := geometry.PointToStorage(*sch.Lat, *sch.Lon)
		if err != nil {
			fail(c, 500, kindInternal, "failed to encode geometry")
			return
		}
		changes["geom"] = geom
	}
	node, err := store.UpdateNode(a.db, id, changes)
	if err != nil {
		storeError(c, err, "node")
		return
	}
	out, err := nodeOut(node)
	if err != nil {
		fail(c, 500, kindInternal, "failed to decode geometry")
		return
	}
	c.JSON(200, gin.H{"node": out})
}

func (a *app) deleteNode(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := store.DeleteNode(a.db, id); err != nil {
		storeError(c, err, "node")
		return
	}
	c.JSON(200, gin.H{"message": "node deleted"})
}

func (a *app) nearbyNodes(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		fail(c, 400, kindValidation, "lat and lon query parameters are required")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		fail(c, 400, kindValidation, "lat/lon out of range")
		return
	}
	distance := a.cfg.NearbyDefaultKm
	if q := c.Query("distance"); q != "" {
		d, err := strconv.ParseFloat(q, 64)
		if err != nil || d < 0 {
			fail(c, 400, kindValidation, "distance must be a non-negative number of kilometers")
			return
		}
		distance = d
	}
	nodes, err := store.NearbyNodes(a.db, lat, lon, distance)
	if err != nil {
		storeError(c, err, "nodes")
		return
	}
	out := nodesOut(nodes)
	c.JSON(200, gin.H{"nodes": out, "count": len(out)})
}
