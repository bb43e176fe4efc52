package schemas

import "gorm.io/datatypes"

type NodeCreate struct {
	Name        string                 `json:"name" binding:"required,min=1,max=255"`
	Description *string                `json:"description"`
	NodeType    string                 `json:"node_type" binding:"omitempty,oneof=muft cross bsp terminal"`
	Status      string                 `json:"status" binding:"omitempty,oneof=active inactive maintenance"`
	Lat         *float64               `json:"lat" binding:"required,gte=-90,lte=90"`
	Lon         *float64               `json:"lon" binding:"required,gte=-180,lte=180"`
	MetaData    map[string]interface{} `json:"meta_data"`
}

type NodeUpdate struct {
	Name        *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string                `json:"description"`
	NodeType    *string                `json:"node_type" binding:"omitempty,oneof=muft cross bsp terminal"`
	Status      *string                `json:"status" binding:"omitempty,oneof=active inactive maintenance"`
	Lat         *float64               `json:"lat" binding:"omitempty,gte=-90,lte=90"`
	Lon         *float64               `json:"lon" binding:"omitempty,gte=-180,lte=180"`
	MetaData    map[string]interface{} `json:"meta_data"`
}

// Changes builds the column change-set from the fields the body carried.
// Geometry (lat/lon) is handled by the caller, never here.
func (u NodeUpdate) Changes(p Presence) (map[string]interface{}, error) {
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
	if p.Has("node_type") {
		if u.NodeType == nil {
			return nil, nullErr("node_type")
		}
		changes["node_type"] = *u.NodeType
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
