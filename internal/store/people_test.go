package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEmployees(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name                 string
		empName, dept, place string
		want                 int
	}{
		{name: "all active", want: 12},
		{name: "by name", empName: "priya", want: 1},
		{name: "by department", dept: "engineering", want: 7},
		{name: "by location", place: "hyderabad", want: 6},
		{name: "combined", dept: "engineering", place: "bangalore", want: 2},
		{name: "no match", empName: "zorro", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchEmployees(t.Context(), tt.empName, tt.dept, tt.place)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestGetEmployee(t *testing.T) {
	s := newTestStore(t)

	byID, err := s.GetEmployee(t.Context(), "EMP002")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", byID.FullName)
	assert.Equal(t, "Ravi Kumar", byID.ManagerName)
	assert.Len(t, byID.LeaveBalances, 3)

	byName, err := s.GetEmployee(t.Context(), "ravi")
	require.NoError(t, err)
	assert.Equal(t, "EMP001", byName.EmpID)
	assert.Empty(t, byName.ManagerName)
	assert.Len(t, byName.DirectReports, 6)

	_, err = s.GetEmployee(t.Context(), "nobody-here")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDepartments(t *testing.T) {
	s := newTestStore(t)

	depts, err := s.Departments(t.Context())
	require.NoError(t, err)
	require.Len(t, depts, 5)

	byName := make(map[string]int)
	for _, d := range depts {
		byName[d.Name] = d.Headcount
	}
	assert.Equal(t, 7, byName["Engineering"])
	assert.Equal(t, 2, byName["HR"])
}

func TestLeaveRequests(t *testing.T) {
	s := newTestStore(t)

	all, err := s.LeaveRequests(t.Context(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	pending, err := s.LeaveRequests(t.Context(), "", "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	mine, err := s.LeaveRequests(t.Context(), "EMP002", "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Priya Sharma", mine[0].FullName)
}

func TestApplyLeave(t *testing.T) {
	s := newTestStore(t)

	t.Run("accepted within balance", func(t *testing.T) {
		receipt, err := s.ApplyLeave(t.Context(), "EMP003", "Annual Leave", "2024-08-05", "2024-08-07", "Short break")
		require.NoError(t, err)
		assert.True(t, receipt.Accepted)
		assert.Equal(t, 3, receipt.Days)

		requests, err := s.LeaveRequests(t.Context(), "EMP003", "pending")
		require.NoError(t, err)
		require.NotEmpty(t, requests)
		assert.Equal(t, "PENDING", requests[0].Status)
	})

	t.Run("rejected over balance", func(t *testing.T) {
		// EMP003 has 12 Annual Leave days remaining.
		receipt, err := s.ApplyLeave(t.Context(), "EMP003", "Annual Leave", "2024-08-01", "2024-08-20", "Long trip")
		require.NoError(t, err)
		assert.False(t, receipt.Accepted)
		assert.Equal(t, 20, receipt.Days)
		assert.Contains(t, receipt.Message, "Insufficient Annual Leave balance")
	})

	t.Run("untracked leave type is accepted", func(t *testing.T) {
		receipt, err := s.ApplyLeave(t.Context(), "EMP003", "Casual Leave", "2024-09-02", "2024-09-02", "Errand")
		require.NoError(t, err)
		assert.True(t, receipt.Accepted)
		assert.Equal(t, 1, receipt.Days)
	})

	t.Run("malformed dates", func(t *testing.T) {
		_, err := s.ApplyLeave(t.Context(), "EMP003", "Annual Leave", "next monday", "2024-08-07", "")
		require.ErrorIs(t, err, ErrInvalidDates)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := s.ApplyLeave(t.Context(), "EMP003", "Annual Leave", "2024-08-07", "2024-08-01", "")
		require.ErrorIs(t, err, ErrInvalidDates)
	})
}

func TestAnnouncements(t *testing.T) {
	s := newTestStore(t)

	all, err := s.Announcements(t.Context(), false)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.True(t, all[0].Pinned)
	assert.True(t, all[1].Pinned)
	assert.False(t, all[2].Pinned)

	pinned, err := s.Announcements(t.Context(), true)
	require.NoError(t, err)
	assert.Len(t, pinned, 2)
}

func TestExpenses(t *testing.T) {
	s := newTestStore(t)

	all, err := s.Expenses(t.Context(), "", "")
	require.NoError(t, err)
	require.Len(t, all, 5)
	for _, e := range all {
		assert.NotEmpty(t, e.FullName)
	}

	pending, err := s.Expenses(t.Context(), "", "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Priya Sharma", pending[0].FullName)

	mine, err := s.Expenses(t.Context(), "EMP004", "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
