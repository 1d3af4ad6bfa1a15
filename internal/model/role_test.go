package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"freelancer", RoleFreelancer, false},
		{"seller", RoleFreelancer, false},
		{"  Seller ", RoleFreelancer, false},
		{"client", RoleClient, false},
		{"buyer", RoleClient, false},
		{"BUYER", RoleClient, false},
		{"admin", RoleAdmin, false},
		{"wizard", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoleSetRoundTrip(t *testing.T) {
	rs, err := ParseRoleSet([]string{"seller", "buyer"})
	if err != nil {
		t.Fatalf("ParseRoleSet: %v", err)
	}
	if !rs.Has(RoleFreelancer) || !rs.Has(RoleClient) {
		t.Fatalf("ParseRoleSet missing roles: %v", rs)
	}
	if got, want := rs.String(), "freelancer,client"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	back := RoleSetFromColumn(rs.String())
	if !back.Has(RoleFreelancer) || !back.Has(RoleClient) || back.Has(RoleAdmin) {
		t.Errorf("RoleSetFromColumn round trip = %v", back)
	}
}

func TestRoleSetFromColumnSkipsJunk(t *testing.T) {
	rs := RoleSetFromColumn("client,,unknown,admin")
	if !rs.Has(RoleClient) || !rs.Has(RoleAdmin) {
		t.Errorf("expected client and admin, got %v", rs)
	}
	if len(rs) != 2 {
		t.Errorf("expected 2 roles, got %d", len(rs))
	}
	if got := RoleSetFromColumn(""); len(got) != 0 {
		t.Errorf("empty column should parse to empty set, got %v", got)
	}
}
