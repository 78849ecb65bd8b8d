package profile

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		raw    string
		want   Role
		wantOK bool
	}{
		{"LEVEL1", RoleSales, true},
		{"LEVEL_1", RoleSales, true},
		{"LEVEL2", RoleSales, true},
		{"level_2", RoleSales, true},
		{"SALES", RoleSales, true},
		{"LEVEL3", RoleAdmin, true},
		{"LEVEL_3", RoleAdmin, true},
		{" admin ", RoleAdmin, true},
		{"FINANCE", RoleFinance, true},
		{"MASTER", RoleMaster, true},
		{"SUPERUSER", RoleSales, false},
		{"", RoleSales, false},
	}
	for _, tt := range tests {
		got, ok := NormalizeRole(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("NormalizeRole(%q) = (%s,%v), want (%s,%v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRole_OneOf(t *testing.T) {
	if !RoleFinance.OneOf(RoleAdmin, RoleFinance) {
		t.Fatalf("FINANCE should be in [ADMIN FINANCE]")
	}
	if RoleSales.OneOf(RoleAdmin, RoleMaster) {
		t.Fatalf("SALES should not be in [ADMIN MASTER]")
	}
}

func TestRequestContext_DisplayName(t *testing.T) {
	if got := (RequestContext{Email: "a@x.io"}).DisplayName(); got != "a@x.io" {
		t.Fatalf("got %q", got)
	}
	if got := (RequestContext{Email: "a@x.io", FullName: "Ann"}).DisplayName(); got != "Ann" {
		t.Fatalf("got %q", got)
	}
}
