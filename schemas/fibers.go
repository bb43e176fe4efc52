package schemas

import "gorm.io/datatypes"

type FiberCreate struct {
	Name       string                 `json:"name" binding:"required,min=1,max=255"`
	CableType  *string                `json:"cable_type" binding:"omitempty,max=100"`
	FiberCount *int                   `json:"fiber_count" binding:"omitempty,gte=1"`
	Status     string                 `json:"status" binding:"omitempty,oneof=active spare damaged"`
	VolsID     *uint                  `json:"vols_id"`
	MetaData   map[string]interface{} `json:"meta_data"`
}

type FiberUpdate struct {
	Name       *string                `json:"name" binding:"omitempty,min=1,max=255"`
	CableType  *string                `json:"cable_type" binding:"omitempty,max=100"`
	FiberCount *int                   `json:"fiber_count" binding:"omitempty,gte=1"`
	Status     *string                `json:"status" binding:"omitempty,oneof=active spare damaged"`
	VolsID     *uint                  `json:"vols_id"`
	MetaData   map[string]interface{} `json:"meta_data"`
}

func (u FiberUpdate) Changes(p Presence) (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if p.Has("name") {
		if u.Name == nil {
			return nil, nullErr("name")
		}
		changes["name"] = *u.Name
	}
	if p.Has("cable_type") {
		changes["cable_type"] = u.CableType
	}
	if p.Has("fiber_count") {
		changes["fiber_count"] = u.FiberCount
	}
	if p.Has("status") {
		if u.Status == nil {
			return nil, nullErr("status")
		}
		changes["status"] = *u.Status
	}
	if p.Has("vols_id") {
		changes["vols_id"] = u.VolsID
	}
	if p.Has("meta_data") {
		changes["meta_data"] = datatypes.JSONMap(u.MetaData)
	}
	return changes, nil
}
