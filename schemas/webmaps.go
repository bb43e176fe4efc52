package schemas

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type WebMapCreate struct {
	Name          string                 `json:"name" binding:"required,min=1,max=255"`
	Description   *string                `json:"description"`
	VisibleLayers []string               `json:"visible_layers"`
	CenterLat     *float64               `json:"center_lat" binding:"omitempty,gte=-90,lte=90"`
	CenterLon     *float64               `json:"center_lon" binding:"omitempty,gte=-180,lte=180"`
	ZoomLevel     *int                   `json:"zoom_level" binding:"omitempty,gte=1,lte=20"`
	Permissions   map[string]interface{} `json:"permissions"`
}

type WebMapUpdate struct {
	Name          *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Description   *string                `json:"description"`
	VisibleLayers []string               `json:"visible_layers"`
	CenterLat     *float64               `json:"center_lat" binding:"omitempty,gte=-90,lte=90"`
	CenterLon     *float64               `json:"center_lon" binding:"omitempty,gte=-180,lte=180"`
	ZoomLevel     *int                   `json:"zoom_level" binding:"omitempty,gte=1,lte=20"`
	Permissions   map[string]interface{} `json:"permissions"`
}

// Changes builds the column change-set; center geometry is handled by the
// caller.
func (u WebMapUpdate) Changes(p Presence) (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if p.Has("name") {
		if u.Name == nil {
			return nil, nullErr("name")
		}
		changes["name"] = *u.Name
	}
	if p.Has("description") {
		changes["description"] = u.Description
	}
	if p.Has("visible_layers") {
		changes["visible_layers"] = LayersJSON(u.VisibleLayers)
	}
	if p.Has("zoom_level") {
		if u.ZoomLevel == nil {
			return nil, nullErr("zoom_level")
		}
		changes["zoom_level"] = *u.ZoomLevel
	}
	if p.Has("permissions") {
		changes["permissions"] = datatypes.JSONMap(u.Permissions)
	}
	return changes, nil
}

// LayersJSON encodes the ordered layer list for storage. A nil list stores
// NULL rather than the string "null".
func LayersJSON(layers []string) datatypes.JSON {
	if layers == nil {
		return nil
	}
	b, _ := json.Marshal(layers)
	return datatypes.JSON(b)
}
