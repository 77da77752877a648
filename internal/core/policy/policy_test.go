package policy

import (
	"testing"

	"github.com/mentorhub/mentorship-api/internal/core/domain"
)

func TestIsPathAccessible(t *testing.T) {
	table := Default()

	cases := []struct {
		name string
		role domain.EffectiveRole
		path string
		want bool
	}{
		{"mentee own area", domain.RoleMentee, "/dashboard/mentee", true},
		{"mentee own subpage", domain.RoleMentee, "/dashboard/mentee/bookings", true},
		{"mentee into mentor area", domain.RoleMentee, "/dashboard/mentor", false},
		{"mentor own area", domain.RoleMentor, "/dashboard/mentor/offerings", true},
		{"mentor into mentee area", domain.RoleMentor, "/dashboard/mentee", false},
		{"pending mentor sees mentor area", domain.RolePendingMentor, "/dashboard/mentor", true},
		{"admin into admin area", domain.RoleAdmin, "/dashboard/admin/approvals", true},
		{"admin into mentor area", domain.RoleAdmin, "/dashboard/mentor", true},
		{"admin into mentee area", domain.RoleAdmin, "/dashboard/mentee", true},
		{"mentee into admin area", domain.RoleMentee, "/dashboard/admin", false},
		{"unknown prefix denied", domain.RoleMentee, "/dashboard/billing", false},
		{"guest nowhere", domain.RoleGuest, "/dashboard/mentee", false},
		{"prefix is segment-aware", domain.RoleMentor, "/dashboard/mentorship", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := table.IsPathAccessible(tc.role, tc.path); got != tc.want {
				t.Fatalf("IsPathAccessible(%s, %q) = %v, want %v", tc.role, tc.path, got, tc.want)
			}
		})
	}
}

func TestIsPublic(t *testing.T) {
	table := Default()

	if !table.IsPublic("/dashboard/profile") {
		t.Fatalf("profile should be public to any signed-in user")
	}
	if !table.IsPublic("/dashboard/blog/some-post") {
		t.Fatalf("blog subpages should be public")
	}
	if table.IsPublic("/dashboard/profilesettings") {
		t.Fatalf("public match must be segment-aware")
	}
	if table.IsPublic("/dashboard/mentee") {
		t.Fatalf("role areas are not public")
	}
}

func TestHomeRoute(t *testing.T) {
	table := Default()

	cases := []struct {
		role domain.EffectiveRole
		want string
	}{
		{domain.RoleAdmin, "/dashboard/admin"},
		{domain.RoleMentor, "/dashboard/mentor"},
		{domain.RolePendingMentor, "/dashboard/mentor"},
		{domain.RoleMentee, "/dashboard/mentee"},
		{domain.RoleGuest, "/"},
		{domain.RoleUndetermined, "/"},
	}
	for _, tc := range cases {
		if got := table.HomeRoute(tc.role); got != tc.want {
			t.Fatalf("HomeRoute(%s) = %q, want %q", tc.role, got, tc.want)
		}
	}
}
