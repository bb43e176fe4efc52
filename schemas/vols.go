package schemas

import "gorm.io/datatypes"

// Path coordinates arrive as [lon, lat] pairs, matching GeoJSON order.

type VolsCreate struct {
	Name        string                 `json:"name" binding:"required,min=1,max=255"`
	Description *string                `json:"description"`
	StartNodeID *uint                  `json:"start_node_id"`
	EndNodeID   *uint                  `json:"end_node_id"`
	Path        [][]float64            `json:"path" binding:"required,min=2,dive,len=2"`
	LengthKm    *float64               `json:"length_km" binding:"omitempty,gte=0"`
	Status      string                 `json:"status" binding:"omitempty,oneof=active planning under_construction"`
	MetaData    map[string]interface{} `json:"meta_data"`
}

type VolsUpdate struct {
	Name        *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string                `json:"description"`
	StartNodeID *uint                  `json:"start_node_id"`
	EndNodeID   *uint                  `json:"end_node_id"`
	Path        [][]float64            `json:"path" binding:"omitempty,min=2,dive,len=2"`
	LengthKm    *float64               `json:"length_km" binding:"omitempty,gte=0"`
	Status      *string                `json:"status" binding:"omitempty,oneof=active planning under_construction"`
	MetaData    map[string]interface{} `json:"meta_data"`
}

// Changes builds the column change-set; the path geometry is handled by the
// caller.
func (u VolsUpdate) Changes(p Presence) (map[string]interface{}, error) {
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
	if p.Has("start_node_id") {
		changes["start_node_id"] = u.StartNodeID
	}
	if p.Has("end_node_id") {
		changes["end_node_id"] = u.EndNodeID
	}
	if p.Has("length_km") {
		changes["length_km"] = u.LengthKm
	}
	if p.Has("status") {
		if u.Status == nil {
			return nil, nullErr("status")
		}
		changes["status"] = *u.Status
	}
	if p.Has("meta_data") {
		changes["meta_data"] = datatypes.JSONMap(u.MetaData)
	}
	return changes, nil
}

// PathCoords converts the request path into codec coordinates.
func PathCoords(path [][]float64) [][2]float64 {
	coords := make([][2]float64, len(path))
	for i, c := range path {
		coords[i] = [2]float64{c[0], c[1]}
	}
	return coords
}
