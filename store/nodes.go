package store

import (
	"gorm.io/gorm"

	"vols_gis/backend/geometry"
	"vols_gis/backend/models"
)

// NodeFilter narrows ListNodes. Zero values mean "no filter".
type NodeFilter struct {
	Status   string
	NodeType string
	Search   string // case-insensitive substring on name
}

func CreateNode(db *gorm.DB, node *models.Node) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(node).Error
	}))
}

func GetNode(db *gorm.DB, id uint) (models.Node, error) {
	var node models.Node
	if err := db.First(&node, id).Error; err != nil {
		return models.Node{}, wrap(err)
	}
	return node, nil
}

func ListNodes(db *gorm.DB, f NodeFilter) ([]models.Node, error) {
	q := db.Model(&models.Node{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.NodeType != "" {
		q = q.Where("node_type = ?", f.NodeType)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+f.Search+"%")
	}
	var nodes []models.Node
	if err := q.Order("id").Find(&nodes).Error; err != nil {
		return nil, wrap(err)
	}
	return nodes, nil
}

// UpdateNode applies only the given columns; omitted columns stay untouched.
func UpdateNode(db *gorm.DB, id uint, changes map[string]interface{}) (models.Node, error) {
	var node models.Node
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&node, id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&models.Node{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&node, id).Error
	})
	if err != nil {
		return models.Node{}, wrap(err)
	}
	return node, nil
}

func DeleteNode(db *gorm.DB, id uint) error {
	return wrap(db.Transaction(func(tx *gorm.DB) error {
		var node models.Node
		if err := tx.First(&node, id).Error; err != nil {
			return err
		}
		return tx.Delete(&node).Error
	}))
}

// NearbyNodes returns nodes within distKm kilometers of the query point. On
// Postgres the containment predicate runs in the engine; sqlite has no
// spatial extension, so candidates are decoded and filtered by haversine.
func NearbyNodes(db *gorm.DB, lat, lon, distKm float64) ([]models.Node, error) {
	if db.Dialector.Name() == "postgres" {
		var nodes []models.Node
		err := db.Where(
			"ST_DWithin(ST_GeomFromWKB(geom)::geography, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
			lon, lat, distKm*1000,
		).Order("id").Find(&nodes).Error
		if err != nil {
			return nil, wrap(err)
		}
		return nodes, nil
	}

	var all []models.Node
	if err := db.Order("id").Find(&all).Error; err != nil {
		return nil, wrap(err)
	}
	nodes := make([]models.Node, 0, len(all))
	for _, n := range all {
		nlat, nlon, err := geometry.StorageToPoint(n.Geom)
		if err != nil {
			continue
		}
		if geometry.DistanceKm(lat, lon, nlat, nlon) <= distKm {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}
