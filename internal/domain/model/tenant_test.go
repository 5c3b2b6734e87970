//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTenant_PathPrefix(t *testing.T) {
	tests := []struct {
		name   string
		tenant Tenant
		want   string
	}{
		{
			name:   "default tenant owns the root path",
			tenant: Tenant{Slug: "primary", Default: true},
			want:   "",
		},
		{
			name:   "secondary tenant owns its slug segment",
			tenant: Tenant{Slug: "acme", Default: false},
			want:   "/acme",
		},
		{
			name:   "missing slug falls back to root",
			tenant: Tenant{Slug: "", Default: false},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tenant.PathPrefix())
		})
	}
}

func TestTenant_URLFor(t *testing.T) {
	tests := []struct {
		name   string
		tenant Tenant
		path   string
		want   string
	}{
		{
			name:   "default tenant",
			tenant: Tenant{BaseURL: "https://auth.example.com", Default: true},
			path:   "/consent",
			want:   "https://auth.example.com/consent",
		},
		{
			name:   "secondary tenant includes slug",
			tenant: Tenant{BaseURL: "https://auth.example.com", Slug: "acme"},
			path:   "/consent",
			want:   "https://auth.example.com/acme/consent",
		},
		{
			name:   "trailing slash on base is trimmed",
			tenant: Tenant{BaseURL: "https://auth.example.com/", Slug: "acme"},
			path:   "consent",
			want:   "https://auth.example.com/acme/consent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tenant.URLFor(tt.path))
		})
	}
}

func TestTenant_ConsentURL(t *testing.T) {
	tenant := Tenant{BaseURL: "https://auth.example.com", Slug: "acme"}
	assert.Equal(t, "https://auth.example.com/acme/consent", tenant.ConsentURL())
}

func TestTenant_SessionLifetime(t *testing.T) {
	assert.Equal(t, time.Hour, (&Tenant{SessionLifetimeSecs: 3600}).SessionLifetime())
	assert.Equal(t, DefaultSessionLifetime, (&Tenant{}).SessionLifetime())
	assert.Equal(t, DefaultSessionLifetime, (&Tenant{SessionLifetimeSecs: -1}).SessionLifetime())
}
