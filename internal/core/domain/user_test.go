package domain

import "testing"

func TestClaims_CanManage(t *testing.T) {
	cases := []struct {
		name       string
		claims     Claims
		department int
		want       bool
	}{
		{"admin manages any", Claims{Role: RoleAdmin}, 42, true},
		{"user in set", Claims{Role: RoleUser, Departments: []int{1, 2}}, 2, true},
		{"user outside set", Claims{Role: RoleUser, Departments: []int{1, 2}}, 3, false},
		{"user empty set", Claims{Role: RoleUser}, 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.claims.CanManage(tc.department); got != tc.want {
				t.Fatalf("CanManage(%d) = %v, want %v", tc.department, got, tc.want)
			}
		})
	}
}
