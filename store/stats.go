package store

import (
	"gorm.io/gorm"

	"vols_gis/backend/models"
)

// Totals carries the per-entity row counts used by the stats endpoints.
type Totals struct {
	Nodes  int64
	Vols   int64
	Fibers int64
	Links  int64
}

func CountTotals(db *gorm.DB) (Totals, error) {
	var t Totals
	for _, c := range []struct {
		model interface{}
		dst   *int64
	}{
		{&models.Node{}, &t.Nodes},
		{&models.Vols{}, &t.Vols},
		{&models.Fiber{}, &t.Fibers},
		{&models.Link{}, &t.Links},
	} {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return Totals{}, wrap(err)
		}
	}
	return t, nil
}

type groupRow struct {
	Key   *string
	Count int64
}

// CountByColumn groups rows of the model by a string column. NULL and empty
// keys are reported as "unknown".
func CountByColumn(db *gorm.DB, model interface{}, column string) (map[string]int64, error) {
	var rows []groupRow
	err := db.Model(model).
		Select(column + " AS key, COUNT(id) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err)
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		key := "unknown"
		if r.Key != nil && *r.Key != "" {
			key = *r.Key
		}
		out[key] += r.Count
	}
	return out, nil
}

type fkRow struct {
	Key   *uint
	Count int64
}

// CountByForeignKey groups rows of the model by an integer foreign-key
// column, skipping NULL keys.
func CountByForeignKey(db *gorm.DB, model interface{}, column string) (map[uint]int64, error) {
	var rows []fkRow
	err := db.Model(model).
		Select(column + " AS key, COUNT(id) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, wrap(err)
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		if r.Key == nil {
			continue
		}
		out[*r.Key] = r.Count
	}
	return out, nil
}
