package main

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"vols_gis/backend/geometry"
	"vols_gis/backend/models"
	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

// volsResponse exposes the route polyline as an ordered [lon, lat] list.
type volsResponse struct {
	models.Vols
	Path [][2]float64 `json:"path"`
}

func volsOut(v models.Vols) (volsResponse, error) {
	coords, err := geometry.StorageToLine(v.Path)
	if err != nil {
		return volsResponse{}, err
	}
	return volsResponse{Vols: v, Path: coords}, nil
}

func volsListOut(list []models.Vols) []volsResponse {
	out := make([]volsResponse, 0, len(list))
	for _, v := range list {
		r, err := volsOut(v)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (a *app) listVols(c *gin.Context) {
	filter := store.VolsFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	list, err := store.ListVols(a.db, filter)
	if err != nil {
		storeError(c, err, "vols")
		return
	}
	out := volsListOut(list)
	c.JSON(200, gin.H{"vols": out, "count": len(out)})
}

func (a *app) createVols(c *gin.Context) {
	var sch schemas.VolsCreate
	if !bindCreate(c, &sch) {
		return
	}
	path, err := geometry.LineToStorage(schemas.PathCoords(sch.Path))
	if err != nil {
		if errors.Is(err, geometry.ErrShortLine) {
			fail(c, 400, kindValidation, "path must contain at least 2 points")
		} else {
			fail(c, 500, kindInternal, "failed to encode geometry")
		}
		return
	}
	vols := models.Vols{
		Name:        sch.Name,
		Description: sch.Description,
		StartNodeID: sch.StartNodeID,
		EndNodeID:   sch.EndNodeID,
		Path:        path,
		LengthKm:    sch.LengthKm,
		Status:      sch.Status,
		MetaData:    datatypes.JSONMap(sch.MetaData),
	}
	if err := store.CreateVols(a.db, &vols); err != nil {
		storeError(c, err, "vols")
		return
	}
	out, err := volsOut(vols)
	if err != nil {
		fail(c, 500, kindInternal, "failed to decode geometry")
		return
	}
	c.JSON(201, gin.H{"vols": out})
}

func (a *app) getVols(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vols, err := store.GetVols(a.db, id)
	if err != nil {
		storeError(c, err, "vols")
		return
	}
	out, err := volsOut(vols)
	if err != nil {
		fail(c, 500, kindInternal, "failed to decode geometry")
		return
	}
	c.JSON(200, gin.H{"vols": out})
}

func (a *app) updateVols(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var sch schemas.VolsUpdate
	presence, ok := bindUpdate(c, &sch)
	if !ok {
		return
	}
	changes, err := sch.Changes(presence)
	if err != nil {
		fail(c, 400, kindValidation, err.Error())
		return
	}
	if presence.Has("path") {
		path, err := geometry.LineToStorage(schemas.PathCoords(sch.Path))
		if err != nil {
			if errors.Is(err, geometry.ErrShortLine) {
				fail(c, 400, kindValidation, "path must contain at least 2 points")
			} else {
				fail(c, 500, kindInternal, "failed to encode geometry")
			}
			return
		}
		changes["path"] = path
	}
	vols, err := store.UpdateVols(a.db, id, changes)
	if err != nil {
		storeError(c, err, "vols")
		return
	}
	out, err := volsOut(vols)
	if err != nil {
		fail(c, 500, kindInternal, "failed to decode geometry")
		return
	}
	c.JSON(200, gin.H{"vols": out})
}

func (a *app) deleteVols(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := store.DeleteVols(a.db, id); err != nil {
		storeError(c, err, "vols")
		return
	}
	c.JSON(200, gin.H{"message": "vols deleted"})
}

// volsPath answers a bare GeoJSON Feature for one route.
func (a *app) volsPath(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vols, err := store.GetVols(a.db, id)
	if err != nil {
		storeError(c, err, "vols")
		return
	}
	feature, err := geometry.LineFeature(vols.Path, map[string]interface{}{
		"id":          vols.ID,
		"name":        vols.Name,
		"description": vols.Description,
		"status":      vols.Status,
	})
	if err != nil {
		fail(c, 500, kindInternal, "failed to decode geometry")
		return
	}
	c.JSON(200, feature)
}
