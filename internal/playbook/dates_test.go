package playbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueDate_PositiveOffset(t *testing.T) {
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	d := DueDate(anchor, 14)
	require.NotNil(t, d)
	assert.Equal(t, "2024-01-15", d.Format("2006-01-02"))

	d = DueDate(anchor, 45)
	require.NotNil(t, d)
	assert.Equal(t, "2024-02-15", d.Format("2006-01-02"))
}

func TestDueDate_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 10, 0, 30, 0, 0, time.UTC)
	night := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)

	a := DueDate(morning, 7)
	b := DueDate(night, 7)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.True(t, a.Equal(*b), "same calendar anchor must yield same date regardless of clock time")
	assert.Equal(t, 0, a.Hour())
}

func TestDueDate_NonPositiveOffsets(t *testing.T) {
	anchor := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, DueDate(anchor, 0))
	assert.Nil(t, DueDate(anchor, -3))
}

func TestDueDate_CrossesMonthBoundary(t *testing.T) {
	anchor := time.Date(2024, 1, 31, 6, 0, 0, 0, time.UTC)
	d := DueDate(anchor, 1)
	require.NotNil(t, d)
	assert.Equal(t, "2024-02-01", d.Format("2006-01-02"))
}
