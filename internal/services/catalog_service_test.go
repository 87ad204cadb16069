package services

import (
	"testing"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog([]models.Product{
		{ID: "starter", Name: "Starter", Price: 20000, CycleDays: 30, DailyIncome: 1000},
		{ID: "", Name: "Unnamed"},
		{ID: "gold", Name: "Gold", Price: 100000, CycleDays: 60, DailyIncome: 5500},
		{ID: "starter", Name: "Duplicate"},
	})

	products := c.List()
	require.Len(t, products, 2)
	assert.Equal(t, "starter", products[0].ID)
	assert.Equal(t, "gold", products[1].ID)

	p, err := c.Find(" gold ")
	require.NoError(t, err)
	assert.Equal(t, int64(330000), p.TotalIncome())

	s, err := c.Find("starter")
	require.NoError(t, err)
	assert.Equal(t, "Starter", s.Name)

	_, err = c.Find("silver")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
