package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vols_gis/backend/models"
)

func TestCountTotals(t *testing.T) {
	db := testDB(t)
	for i, status := range []string{"active", "active", "maintenance"} {
		node := models.Node{Name: "n", Status: status, Geom: pointGeom(t, 56.9+float64(i)/100, 24.1)}
		require.NoError(t, CreateNode(db, &node))
	}
	seedVols(t, db, "trunk", "active", nil)

	totals, err := CountTotals(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.Nodes)
	assert.Equal(t, int64(1), totals.Vols)
	assert.Zero(t, totals.Fibers)
	assert.Zero(t, totals.Links)
}

func TestCountByColumn(t *testing.T) {
	db := testDB(t)
	for _, n := range []struct{ nodeType, status string }{
		{"muft", "active"},
		{"muft", "active"},
		{"cross", "maintenance"},
		{"", "active"}, // untyped rows land in the unknown bucket
	} {
		node := models.Node{Name: "n", NodeType: n.nodeType, Status: n.status, Geom: pointGeom(t, 56.9, 24.1)}
		require.NoError(t, CreateNode(db, &node))
	}

	byType, err := CountByColumn(db, &models.Node{}, "node_type")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"muft": 2, "cross": 1, "unknown": 1}, byType)

	byStatus, err := CountByColumn(db, &models.Node{}, "status")
	require.NoError(t, err)
	assert.Equal(t, int64(3), byStatus["active"])
}

func TestCountByForeignKey(t *testing.T) {
	db := testDB(t)
	trunk := seedVols(t, db, "trunk", "active", nil)
	spur := seedVols(t, db, "spur", "active", nil)

	for _, volsID := range []*uint{&trunk.ID, &trunk.ID, &spur.ID, nil} {
		fiber := models.Fiber{Name: "f", Status: "active", VolsID: volsID}
		require.NoError(t, CreateFiber(db, &fiber))
	}

	byVols, err := CountByForeignKey(db, &models.Fiber{}, "vols_id")
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{trunk.ID: 2, spur.ID: 1}, byVols, "unassigned fibers are skipped")
}
