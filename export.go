package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"vols_gis/backend/geometry"
	"vols_gis/backend/models"
	"vols_gis/backend/store"
)

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}

func (a *app) exportNodesGeoJSON(c *gin.Context) {
	nodes, err := store.ListNodes(a.db, store.NodeFilter{})
	if err != nil {
		storeError(c, err, "nodes")
		return
	}
	fc := geometry.NewCollection()
	for _, n := range nodes {
		feature, err := geometry.PointFeature(n.Geom, map[string]interface{}{
			"id":          n.ID,
			"name":        n.Name,
			"description": n.Description,
			"node_type":   n.NodeType,
			"status":      n.Status,
			"meta_data":   n.MetaData,
		})
		if err != nil {
			continue
		}
		fc.Append(feature)
	}
	body, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		fail(c, 500, kindInternal, "failed to encode GeoJSON")
		return
	}
	attachment(c, "nodes.geojson")
	c.Data(200, "application/geo+json", body)
}

func (a *app) exportVolsGeoJSON(c *gin.Context) {
	list, err := store.ListVols(a.db, store.VolsFilter{})
	if err != nil {
		storeError(c, err, "vols")
		return
	}
	fc := geometry.NewCollection()
	for _, v := range list {
		feature, err := geometry.LineFeature(v.Path, map[string]interface{}{
			"id":          v.ID,
			"name":        v.Name,
			"description": v.Description,
			"status":      v.Status,
			"length_km":   v.LengthKm,
			"meta_data":   v.MetaData,
		})
		if err != nil {
			continue
		}
		fc.Append(feature)
	}
	body, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		fail(c, 500, kindInternal, "failed to encode GeoJSON")
		return
	}
	attachment(c, "vols.geojson")
	c.Data(200, "application/geo+json", body)
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (a *app) exportNodesCSV(c *gin.Context) {
	nodes, err := store.ListNodes(a.db, store.NodeFilter{})
	if err != nil {
		storeError(c, err, "nodes")
		return
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"ID", "Name", "Description", "Type", "Status", "Latitude", "Longitude"})
	for _, n := range nodes {
		lat, lon, err := geometry.StorageToPoint(n.Geom)
		if err != nil {
			continue
		}
		w.Write([]string{
			strconv.FormatUint(uint64(n.ID), 10),
			n.Name,
			strDeref(n.Description),
			n.NodeType,
			n.Status,
			strconv.FormatFloat(lat, 'f', -1, 64),
			strconv.FormatFloat(lon, 'f', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fail(c, 500, kindInternal, "failed to encode CSV")
		return
	}
	attachment(c, "nodes.csv")
	c.Data(200, "text/csv; charset=utf-8", buf.Bytes())
}

func (a *app) exportFibersCSV(c *gin.Context) {
	fibers, err := store.ListFibers(a.db, store.FiberFilter{})
	if err != nil {
		storeError(c, err, "fibers")
		return
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"ID", "Name", "Cable Type", "Fiber Count", "Status", "Vols ID"})
	for _, f := range fibers {
		fiberCount := ""
		if f.FiberCount != nil {
			fiberCount = strconv.Itoa(*f.FiberCount)
		}
		volsID := ""
		if f.VolsID != nil {
			volsID = strconv.FormatUint(uint64(*f.VolsID), 10)
		}
		w.Write([]string{
			strconv.FormatUint(uint64(f.ID), 10),
			f.Name,
			strDeref(f.CableType),
			fiberCount,
			f.Status,
			volsID,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fail(c, 500, kindInternal, "failed to encode CSV")
		return
	}
	attachment(c, "fibers.csv")
	c.Data(200, "text/csv; charset=utf-8", buf.Bytes())
}

// exportAllJSON dumps the whole inventory, with geometries decoded into the
// same lat/lon and path shapes the regular API uses.
func (a *app) exportAllJSON(c *gin.Context) {
	nodes, err := store.ListNodes(a.db, store.NodeFilter{})
	if err != nil {
		storeError(c, err, "nodes")
		return
	}
	volsList, err := store.ListVols(a.db, store.VolsFilter{})
	if err != nil {
		storeError(c, err, "vols")
		return
	}
	fibers, err := store.ListFibers(a.db, store.FiberFilter{})
	if err != nil {
		storeError(c, err, "fibers")
		return
	}
	links, err := store.ListLinks(a.db, store.LinkFilter{})
	if err != nil {
		storeError(c, err, "links")
		return
	}
	if fibers == nil {
		fibers = []models.Fiber{}
	}
	if links == nil {
		links = []models.Link{}
	}
	data := gin.H{
		"nodes":  nodesOut(nodes),
		"vols":   volsListOut(volsList),
		"fibers": fibers,
		"links":  links,
	}
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fail(c, 500, kindInternal, "failed to encode export")
		return
	}
	attachment(c, "vols_gis_export.json")
	c.Data(200, "application/json", body)
}
