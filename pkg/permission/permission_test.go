package permission

import "testing"

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		pattern, path string
		want          bool
	}{
		{"/api/admin/users", "/api/admin/users", true},
		{"/api/admin/users", "/api/admin/users/", true},
		{"/api/admin/users/:id/role", "/api/admin/users/42/role", true},
		{"/api/admin/users/:id/role", "/api/admin/users/42", false},
		{"/api/admin/*", "/api/admin/tasks/7", true},
		{"/api/admin/*", "/api/admin", true},
		{"/api/admin/*", "/api/users/7", false},
		{"/api/tasks", "/api/tasks/1", false},
	}
	for _, tt := range tests {
		if got := matchRoute(tt.pattern, tt.path); got != tt.want {
			t.Errorf("matchRoute(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestTable_MostSpecificWins(t *testing.T) {
	table := Table{
		"/api/admin/*":     2,
		"/api/admin/stats": 3,
	}

	role, ok := table.Match("/api/admin/stats")
	if !ok || role != 3 {
		t.Errorf("Match = (%d, %v), want (3, true)", role, ok)
	}
	role, ok = table.Match("/api/admin/users")
	if !ok || role != 2 {
		t.Errorf("Match = (%d, %v), want (2, true)", role, ok)
	}
}

func TestTable_Allows(t *testing.T) {
	table := Table{"/api/admin/*": 2}

	if !table.Allows("/api/admin/users", []int{1, 2}) {
		t.Error("admin role should be allowed")
	}
	if table.Allows("/api/admin/users", []int{1}) {
		t.Error("user role should be denied")
	}
	if table.Allows("/api/other", []int{2}) {
		t.Error("unknown path should be denied")
	}
}
