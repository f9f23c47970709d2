package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/ledger"
)

const validTemplate = `
name: Test chart
accounts:
  - code: "1000"
    name: Checking
    type: asset
    sub_type: cash
  - code: "3000"
    name: Capital
    type: equity
    role: capital
  - code: "3200"
    name: Drawings
    type: equity
    role: drawings
  - code: "4200"
    name: Other Income
    type: revenue
    role: income
  - code: "6000"
    name: Rent
    type: expense
    sub_type: operations
`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tpl, err := Load(writeTemplate(t, validTemplate))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if tpl.Name != "Test chart" {
		t.Errorf("template name = %q, expected %q", tpl.Name, "Test chart")
	}
	if len(tpl.Accounts) != 5 {
		t.Errorf("template has %d accounts, expected 5", len(tpl.Accounts))
	}
}

func TestLoadRejectsBadTemplates(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "name: Empty\naccounts: []\n"},
		{"duplicate code", `
accounts:
  - {code: "1000", name: A, type: asset}
  - {code: "1000", name: B, type: asset}
`},
		{"invalid type", `
accounts:
  - {code: "1000", name: A, type: fund}
`},
		{"unknown role", `
accounts:
  - {code: "1000", name: A, type: asset, role: treasurer}
`},
		{"missing name", `
accounts:
  - {code: "1000", type: asset}
`},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemplate(t, tt.content)); err == nil {
				t.Errorf("Load() accepted invalid template")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Load() accepted a missing file")
	}
}

func TestSeed(t *testing.T) {
	conn, err := db.Open(filepath.Join(t.TempDir(), "chart_test.db"))
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	defer conn.Close()

	tpl, err := Load(writeTemplate(t, validTemplate))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	accounts := db.NewAccountStore(conn)
	roles := db.NewRoleStore(conn)

	created, err := Seed(accounts, roles, "t1", tpl)
	if err != nil {
		t.Fatalf("Seed() returned error: %v", err)
	}
	if len(created) != 5 {
		t.Fatalf("Seed() created %d accounts, expected 5", len(created))
	}

	listed, err := accounts.ListByTenant("t1")
	if err != nil {
		t.Fatalf("ListByTenant() returned error: %v", err)
	}
	if len(listed) != 5 {
		t.Fatalf("tenant has %d accounts, expected 5", len(listed))
	}
	for _, a := range listed {
		if !a.Active || !a.Balance.IsZero() {
			t.Errorf("account %s seeded as active=%v balance=%s, expected active with zero balance",
				a.Code, a.Active, a.Balance)
		}
	}

	// Declared roles are bound to the created accounts.
	capital, err := accounts.FindByCode("t1", "3000")
	if err != nil {
		t.Fatalf("FindByCode() returned error: %v", err)
	}
	bound, err := roles.Resolve("t1", ledger.RoleCapital)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if bound != capital.ID {
		t.Errorf("capital role bound to %s, expected %s", bound, capital.ID)
	}
	if bound, _ := roles.Resolve("t1", ledger.RoleIncome); bound == "" {
		t.Errorf("income role not bound after seeding")
	}

	// Re-seeding the same tenant collides on account codes.
	if _, err := Seed(accounts, roles, "t1", tpl); err == nil {
		t.Errorf("Seed() allowed seeding the same tenant twice")
	}
}
