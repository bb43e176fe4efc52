package main

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"vols_gis/backend/geometry"
	"vols_gis/backend/models"
	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

// webMapResponse adds the decoded map center, when one is set.
type webMapResponse struct {
	models.WebMap
	CenterLat *float64 `json:"center_lat"`
	CenterLon *float64 `json:"center_lon"`
}

func webMapOut(m models.WebMap) webMapResponse {
	out := webMapResponse{WebMap: m}
	if len(m.CenterGeom) > 0 {
		if lat, lon, err := geometry.StorageToPoint(m.CenterGeom); err == nil {
			out.CenterLat = &lat
			out.CenterLon = &lon
		}
	}
	return out
}

func webMapsOut(list []models.WebMap) []webMapResponse {
	out := make([]webMapResponse, 0, len(list))
	for _, m := range list {
		out = append(out, webMapOut(m))
	}
	return out
}

func (a *app) listWebMaps(c *gin.Context) {
	maps, err := store.ListWebMaps(a.db)
	if err != nil {
		storeError(c, err, "webmaps")
		return
	}
	out := webMapsOut(maps)
	c.JSON(200, gin.H{"webmaps": out, "count": len(out)})
}

func (a *app) createWebMap(c *gin.Context) {
	var sch schemas.WebMapCreate
	if !bindCreate(c, &sch) {
		return
	}
	webmap := models.WebMap{
		Name:          sch.Name,
		Description:   sch.Description,
		VisibleLayers: schemas.LayersJSON(sch.VisibleLayers),
		Permissions:   datatypes.JSONMap(sch.Permissions),
	}
	if sch.ZoomLevel != nil {
		webmap.ZoomLevel = *sch.ZoomLevel
	} else {
		webmap.ZoomLevel = 8
	}
	if sch.CenterLat != nil && sch.CenterLon != nil {
		geom, err := geometry.PointToStorage(*sch.CenterLat, *sch.CenterLon)
		if err != nil {
			fail(c, 500, kindInternal, "failed to encode geometry")
			return
		}
		webmap.CenterGeom = geom
	}
	if err := store.CreateWebMap(a.db, &webmap); err != nil {
		storeError(c, err, "webmap")
		return
	}
	c.JSON(201, gin.H{"webmap": webMapOut(webmap)})
}

func (a *app) getWebMap(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	webmap, err := store.GetWebMap(a.db, id)
	if err != nil {
		storeError(c, err, "webmap")
		return
	}
	c.JSON(200, gin.H{"webmap": webMapOut(webmap)})
}

func (a *app) updateWebMap(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var sch schemas.WebMapUpdate
	presence, ok := bindUpdate(c, &sch)
	if !ok {
		return
	}
	changes, err := sch.Changes(presence)
	if err != nil {
		fail(c, 400, kindValidation, err.Error())
		return
	}
	// moving the center requires both coordinates in the payload
	if sch.CenterLat != nil && sch.CenterLon != nil {
		geom, err := geometry.PointToStorage(*sch.CenterLat, *sch.CenterLon)
		if err != nil {
			fail(c, 500, kindInternal, "failed to encode geometry")
			return
		}
		changes["center_geom"] = geom
	}
	webmap, err := store.UpdateWebMap(a.db, id, changes)
	if err != nil {
		storeError(c, err, "webmap")
		return
	}
	c.JSON(200, gin.H{"webmap": webMapOut(webmap)})
}

func (a *app) deleteWebMap(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := store.DeleteWebMap(a.db, id); err != nil {
		storeError(c, err, "webmap")
		return
	}
	c.JSON(200, gin.H{"message": "webmap deleted"})
}
