package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stitchcraft/stitchcraft/internal/config"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
)

func TestDefaultPolicy(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("default policy: %v", err)
	}

	tests := []struct {
		name  string
		role  model.Role
		perm  Permission
		extra []string
		want  bool
	}{
		{name: "tailor wildcard", role: model.RoleTailor, perm: ExportsRead, want: true},
		{name: "admin wildcard", role: model.RoleAdmin, perm: WorkersManage, want: true},
		{name: "worker read orders", role: model.RoleWorker, perm: OrdersRead, want: true},
		{name: "worker cannot record payments", role: model.RoleWorker, perm: PaymentsWrite, want: false},
		{name: "worker membership grant", role: model.RoleWorker, perm: PaymentsWrite, extra: []string{"payments:write"}, want: true},
		{name: "worker resource wildcard", role: model.RoleWorker, perm: InvoicesWrite, extra: []string{"invoices:*"}, want: true},
		{name: "resource wildcard is scoped", role: model.RoleWorker, perm: ExportsRead, extra: []string{"invoices:*"}, want: false},
		{name: "client has nothing", role: model.RoleClient, perm: OrdersRead, want: false},
		{name: "unknown role", role: model.Role("GUEST"), perm: OrdersRead, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Allows(tt.role, tt.perm, tt.extra); got != tt.want {
				t.Fatalf("Allows(%s, %s) = %v, want %v", tt.role, tt.perm, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":          "roles: [",
		"empty":              "roles: {}",
		"unknown role":       "roles:\n  GUEST: [\"*\"]\n",
		"invalid permission": "roles:\n  WORKER: [\"orders\"]\n",
		"empty action":       "roles:\n  WORKER: [\"orders:\"]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestParseNormalizesRoleNames(t *testing.T) {
	table, err := Parse([]byte("roles:\n  worker: [\"orders:read\"]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !table.Allows(model.RoleWorker, OrdersRead, nil) {
		t.Fatal("expected lowercase role name to be accepted")
	}
	perms := table.Permissions(model.RoleWorker)
	if len(perms) != 1 || perms[0] != "orders:read" {
		t.Fatalf("unexpected permissions: %v", perms)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("roles:\n  WORKER: [\"payments:*\"]\n"), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	table, err := newTable(&config.Config{PolicyFile: path})
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}
	if !table.Allows(model.RoleWorker, PaymentsWrite, nil) {
		t.Fatal("expected file policy to grant payments:write")
	}
	if table.Allows(model.RoleTailor, OrdersRead, nil) {
		t.Fatal("roles missing from file should grant nothing")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !table.Allows(model.RoleTailor, TrackingManage, nil) {
		t.Fatal("expected default policy")
	}
}
