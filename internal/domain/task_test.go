package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func TestTaskValidate(t *testing.T) {
	cases := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{"valid", Task{ProjectID: "p1", Title: "Kickoff", Status: TaskTodo}, false},
		{"missing project", Task{Title: "Kickoff"}, true},
		{"missing title", Task{ProjectID: "p1"}, true},
		{"title too long", Task{ProjectID: "p1", Title: strings.Repeat("x", 201)}, true},
		{"bad status", Task{ProjectID: "p1", Title: "T", Status: "paused"}, true},
		{"empty status ok", Task{ProjectID: "p1", Title: "T"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.task.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskIsOverdue(t *testing.T) {
	past := testNow.AddDate(0, 0, -3)
	future := testNow.AddDate(0, 0, 3)

	assert.False(t, (&Task{Status: TaskTodo}).IsOverdue(testNow), "no due date")
	assert.True(t, (&Task{Status: TaskTodo, DueOn: &past}).IsOverdue(testNow))
	assert.False(t, (&Task{Status: TaskTodo, DueOn: &future}).IsOverdue(testNow))
	assert.False(t, (&Task{Status: TaskDone, DueOn: &past}).IsOverdue(testNow), "done tasks are never overdue")
}

func TestProjectValidate(t *testing.T) {
	p := &Project{Title: "North Forty Restoration", Acreage: 40}
	require.NoError(t, p.Validate())

	assert.Error(t, (&Project{}).Validate(), "title required")
	assert.Error(t, (&Project{Title: "T", Acreage: -1}).Validate(), "negative acreage")
	assert.Error(t, (&Project{Title: strings.Repeat("x", 201)}).Validate())
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "ac", CoalesceStr("", "ac", "ft"))
	assert.Equal(t, "", CoalesceStr("", ""))

	rate := 150.0
	assert.Equal(t, 150.0, Float64FromPtrWithDefault(0, nil, &rate))
	assert.Equal(t, 99.0, Float64FromPtrWithDefault(99, nil, nil))

	require.NotNil(t, Float64PtrCoalesce(nil, &rate))
	assert.Nil(t, Float64PtrCoalesce(nil, nil))
}
