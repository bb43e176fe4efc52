package schemas

import "gorm.io/datatypes"

type LinkCreate struct {
	FiberID      *uint                  `json:"fiber_id" binding:"required"`
	StartNodeID  *uint                  `json:"start_node_id" binding:"required"`
	EndNodeID    *uint                  `json:"end_node_id" binding:"required"`
	StartPort    *int                   `json:"start_port"`
	EndPort      *int                   `json:"end_port"`
	Status       string                 `json:"status" binding:"omitempty,oneof=active spare unused"`
	CapacityGbps *float64               `json:"capacity_gbps" binding:"omitempty,gte=0"`
	MetaData     map[string]interface{} `json:"meta_data"`
}

type LinkUpdate struct {
	FiberID      *uint                  `json:"fiber_id"`
	StartNodeID  *uint                  `json:"start_node_id"`
	EndNodeID    *uint                  `json:"end_node_id"`
	StartPort    *int                   `json:"start_port"`
	EndPort      *int                   `json:"end_port"`
	Status       *string                `json:"status" binding:"omitempty,oneof=active spare unused"`
	CapacityGbps *float64               `json:"capacity_gbps" binding:"omitempty,gte=0"`
	MetaData     map[string]interface{} `json:"meta_data"`
}

func (u LinkUpdate) Changes(p Presence) (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if p.Has("fiber_id") {
		if u.FiberID == nil {
			return nil, nullErr("fiber_id")
		}
		changes["fiber_id"] = *u.FiberID
	}
	if p.Has("start_node_id") {
		if u.StartNodeID == nil {
			return nil, nullErr("start_node_id")
		}
		changes["start_node_id"] = *u.StartNodeID
	}
	if p.Has("end_node_id") {
		if u.EndNodeID == nil {
			return nil, nullErr("end_node_id")
		}
		changes["end_node_id"] = *u.EndNodeID
	}
	if p.Has("start_port") {
		changes["start_port"] = u.StartPort
	}
	if p.Has("end_port") {
		changes["end_port"] = u.EndPort
	}
	if p.Has("status") {
		if u.Status == nil {
			return nil, nullErr("status")
		}
		changes["status"] = *u.Status
	}
	if p.Has("capacity_gbps") {
		changes["capacity_gbps"] = u.CapacityGbps
	}
	if p.Has("meta_data") {
		changes["meta_data"] = datatypes.JSONMap(u.MetaData)
	}
	return changes, nil
}
