package models

import (
	"time"

	"gorm.io/datatypes"
)

// Node is a physical communication point: splice closure (muft),
// cross-connect, distribution box (bsp) or terminal.
type Node struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	Description *string           `json:"description"`
	NodeType    string            `gorm:"size:50" json:"node_type"` // muft, cross, bsp, terminal
	Status      string            `gorm:"size:50" json:"status"`    // active, inactive, maintenance
	Geom        []byte            `gorm:"not null" json:"-"`        // WKB point
	MetaData    datatypes.JSONMap `json:"meta_data"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Vols is a named fiber route between two nodes, geometrically a polyline.
type Vols struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	Description *string           `json:"description"`
	StartNodeID *uint             `gorm:"index" json:"start_node_id"`
	EndNodeID   *uint             `gorm:"index" json:"end_node_id"`
	Path        []byte            `gorm:"not null" json:"-"` // WKB linestring, >= 2 points
	LengthKm    *float64          `json:"length_km"`
	Status      string            `gorm:"size:50" json:"status"` // active, planning, under_construction
	MetaData    datatypes.JSONMap `json:"meta_data"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Fiber is a cable/fiber-count unit assigned to a route.
type Fiber struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Name       string            `gorm:"size:255;not null" json:"name"`
	CableType  *string           `gorm:"size:100" json:"cable_type"`
	FiberCount *int              `json:"fiber_count"`
	Status     string            `gorm:"size:50" json:"status"` // active, spare, damaged
	VolsID     *uint             `gorm:"index" json:"vols_id"`
	MetaData   datatypes.JSONMap `json:"meta_data"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Link is a realized port-to-port connection between two nodes over one fiber.
type Link struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	FiberID      uint              `gorm:"index;not null" json:"fiber_id"`
	StartNodeID  uint              `gorm:"index;not null" json:"start_node_id"`
	EndNodeID    uint              `gorm:"index;not null" json:"end_node_id"`
	StartPort    *int              `json:"start_port"`
	EndPort      *int              `json:"end_port"`
	Status       string            `gorm:"size:50" json:"status"` // active, spare, unused
	CapacityGbps *float64          `json:"capacity_gbps"`
	MetaData     datatypes.JSONMap `json:"meta_data"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:50;default:viewer" json:"role"` // admin, operator, viewer
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WebMap is a saved map-view configuration.
type WebMap struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Description   *string           `json:"description"`
	VisibleLayers datatypes.JSON    `json:"visible_layers"` // ordered layer ids
	CenterGeom    []byte            `json:"-"`              // WKB point, optional
	ZoomLevel     int               `gorm:"default:8" json:"zoom_level"`
	Permissions   datatypes.JSONMap `json:"permissions"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// All lists every entity for migration.
func All() []interface{} {
	return []interface{}{&Node{}, &Vols{}, &Fiber{}, &Link{}, &User{}, &WebMap{}}
}
