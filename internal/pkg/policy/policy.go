package policy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

// Permission is a "resource:action" string.
type Permission string

const (
	ClientsRead       Permission = "clients:read"
	ClientsWrite      Permission = "clients:write"
	OrdersRead        Permission = "orders:read"
	OrdersWrite       Permission = "orders:write"
	PaymentsRead      Permission = "payments:read"
	PaymentsWrite     Permission = "payments:write"
	InvoicesRead      Permission = "invoices:read"
	InvoicesWrite     Permission = "invoices:write"
	MeasurementsRead  Permission = "measurements:read"
	MeasurementsWrite Permission = "measurements:write"
	TrackingManage    Permission = "tracking:manage"
	WorkersManage     Permission = "workers:manage"
	ExportsRead       Permission = "exports:read"
)

const wildcard = "*"

//go:embed policy.yaml
var defaultPolicy []byte

// Table maps roles to granted permission patterns.
type Table struct {
	roles map[model.Role][]string
}

type document struct {
	Roles map[string][]string `yaml:"roles"`
}

// Default returns the embedded policy table.
func Default() (*Table, error) {
	return Parse(defaultPolicy)
}

// Load reads a policy table from path, falling back to the embedded one when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML policy document.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}
	if len(doc.Roles) == 0 {
		return nil, fmt.Errorf("decode policy: no roles defined")
	}

	table := &Table{roles: make(map[model.Role][]string, len(doc.Roles))}
	for name, perms := range doc.Roles {
		role := model.Role(strings.ToUpper(strings.TrimSpace(name)))
		if !role.Valid() {
			return nil, fmt.Errorf("decode policy: unknown role %q", name)
		}
		for _, p := range perms {
			if !ValidPattern(p) {
				return nil, fmt.Errorf("decode policy: invalid permission %q for role %s", p, role)
			}
		}
		table.roles[role] = append([]string(nil), perms...)
	}
	return table, nil
}

// Allows reports whether role, extended by extra grants, holds perm.
func (t *Table) Allows(role model.Role, perm Permission, extra []string) bool {
	for _, pattern := range t.roles[role] {
		if matches(pattern, perm) {
			return true
		}
	}
	for _, pattern := range extra {
		if matches(pattern, perm) {
			return true
		}
	}
	return false
}

// Permissions lists the patterns granted to role.
func (t *Table) Permissions(role model.Role) []string {
	return append([]string(nil), t.roles[role]...)
}

func matches(pattern string, perm Permission) bool {
	if pattern == wildcard || pattern == string(perm) {
		return true
	}
	resource, action, ok := strings.Cut(pattern, ":")
	if !ok || action != wildcard {
		return false
	}
	permResource, _, _ := strings.Cut(string(perm), ":")
	return resource == permResource
}

// ValidPattern reports whether p is "*" or a "resource:action" pattern.
func ValidPattern(p string) bool {
	if p == wildcard {
		return true
	}
	resource, action, ok := strings.Cut(p, ":")
	return ok && resource != "" && action != "" && !strings.Contains(action, ":")
}
