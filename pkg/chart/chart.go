// Package chart loads chart-of-accounts templates from YAML and seeds them
// for a tenant, including the well-known role bindings the posting engine
// resolves deposits and withdrawals through.
package chart

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/growfinance/growledger/pkg/db"
	"github.com/growfinance/growledger/pkg/ledger"
	"gopkg.in/yaml.v3"
)

// TemplateAccount is one account definition in a chart template.
type TemplateAccount struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	SubType string `yaml:"sub_type"`
	Role    string `yaml:"role"` // optional: income, capital, drawings
}

// Template is a complete chart-of-accounts template.
type Template struct {
	Name     string            `yaml:"name"`
	Accounts []TemplateAccount `yaml:"accounts"`
}

// Load reads and validates a chart template from a YAML file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart template: %w", err)
	}

	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	return &tpl, nil
}

// Validate checks codes are unique and types and roles are known.
func (t *Template) Validate() error {
	if len(t.Accounts) == 0 {
		return fmt.Errorf("chart template has no accounts")
	}

	seen := make(map[string]bool, len(t.Accounts))
	for _, a := range t.Accounts {
		if a.Code == "" || a.Name == "" {
			return fmt.Errorf("chart template account needs code and name (code=%q name=%q)", a.Code, a.Name)
		}
		if seen[a.Code] {
			return fmt.Errorf("duplicate account code %s in chart template", a.Code)
		}
		seen[a.Code] = true

		if !ledger.AccountType(a.Type).Valid() {
			return fmt.Errorf("account %s has invalid type %q", a.Code, a.Type)
		}
		switch ledger.AccountRole(a.Role) {
		case "", ledger.RoleIncome, ledger.RoleCapital, ledger.RoleDrawings:
		default:
			return fmt.Errorf("account %s has unknown role %q", a.Code, a.Role)
		}
	}

	return nil
}

// Seed creates the template's accounts for a tenant and binds any declared
// roles. Accounts start active with a zero balance.
func Seed(accounts *db.AccountStore, roles *db.RoleStore, tenantID string, tpl *Template) ([]ledger.Account, error) {
	var created []ledger.Account
	for _, a := range tpl.Accounts {
		account := ledger.Account{
			ID:       uuid.New().String(),
			TenantID: tenantID,
			Code:     a.Code,
			Name:     a.Name,
			Type:     ledger.AccountType(a.Type),
			SubType:  a.SubType,
			Active:   true,
		}
		if err := accounts.Create(&account); err != nil {
			return nil, fmt.Errorf("failed to seed account %s: %w", a.Code, err)
		}

		if a.Role != "" {
			if err := roles.Bind(tenantID, ledger.AccountRole(a.Role), account.ID); err != nil {
				return nil, err
			}
		}

		created = append(created, account)
	}

	return created, nil
}
