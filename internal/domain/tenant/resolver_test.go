//go:build unit

package tenant_test

import (
	"net/url"
	"testing"

	"promenu/internal/domain/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseDomain = "promenu.valueappsolutions.com"
	localLabel = "localhost"
)

func newResolver() *tenant.Resolver {
	return tenant.NewResolver(baseDomain, localLabel)
}

func mustContext(t *testing.T, rawURL string) tenant.RequestContext {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return tenant.ContextFromURL(u)
}

func TestResolver_Resolve(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name   string
		url    string
		wantID tenant.ID
		wantOK bool
	}{
		{
			name:   "query param wins",
			url:    "https://" + baseDomain + "/?shop=corner-deli",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "legacy query param accepted",
			url:    "https://" + baseDomain + "/?hotel=grand-plaza",
			wantID: "grand-plaza",
			wantOK: true,
		},
		{
			name:   "query param overrides subdomain",
			url:    "https://other." + baseDomain + "/?shop=corner-deli",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "query param overrides reserved path",
			url:    "https://" + baseDomain + "/manage?shop=corner-deli",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "production subdomain",
			url:    "https://corner-deli." + baseDomain + "/",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "deep subdomain uses first label",
			url:    "https://corner-deli.staging." + baseDomain + "/",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "local subdomain with port",
			url:    "http://corner-deli.localhost:5173/",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "bare base domain falls through to path",
			url:    "https://" + baseDomain + "/corner-deli",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "bare base domain root is platform",
			url:    "https://" + baseDomain + "/",
			wantOK: false,
		},
		{
			name:   "bare localhost root is platform",
			url:    "http://localhost:5173/",
			wantOK: false,
		},
		{
			name:   "path with trailing segments",
			url:    "https://" + baseDomain + "/corner-deli/menu/drinks",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "reserved segment join",
			url:    "https://" + baseDomain + "/join",
			wantOK: false,
		},
		{
			name:   "reserved segment manage",
			url:    "https://" + baseDomain + "/manage/corner-deli",
			wantOK: false,
		},
		{
			name:   "reserved segment auth",
			url:    "https://" + baseDomain + "/auth/login",
			wantOK: false,
		},
		{
			name:   "ip host falls back to path",
			url:    "http://192.168.1.10:8080/corner-deli",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "unrelated domain resolves by path",
			url:    "https://example.com/corner-deli",
			wantID: "corner-deli",
			wantOK: true,
		},
		{
			name:   "host matching base exactly does not resolve as subdomain",
			url:    "https://" + baseDomain + "/terms",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := r.Resolve(mustContext(t, tt.url))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestResolver_StoreURL_RoundTrip(t *testing.T) {
	r := newResolver()

	contexts := []string{
		"https://" + baseDomain + "/",
		"https://other-shop." + baseDomain + "/menu",
		"http://localhost:5173/",
		"http://corner-deli.localhost:5173/",
		"http://192.168.1.10:8080/",
	}

	for _, raw := range contexts {
		t.Run(raw, func(t *testing.T) {
			rc := mustContext(t, raw)
			storeURL := r.StoreURL(rc, "corner-deli")

			resolved, ok := r.Resolve(mustContext(t, storeURL))
			require.True(t, ok, "store URL %q must resolve", storeURL)
			assert.Equal(t, tenant.ID("corner-deli"), resolved)
		})
	}
}

func TestResolver_StoreURL_Forms(t *testing.T) {
	r := newResolver()

	t.Run("production uses subdomain", func(t *testing.T) {
		rc := mustContext(t, "https://"+baseDomain+"/")
		assert.Equal(t, "https://corner-deli."+baseDomain+"/", r.StoreURL(rc, "corner-deli"))
	})

	t.Run("local keeps port", func(t *testing.T) {
		rc := mustContext(t, "http://localhost:5173/")
		got := r.StoreURL(rc, "corner-deli")
		assert.Equal(t, "http://localhost:5173/?shop=corner-deli", got)
	})

	t.Run("ip literal uses query form", func(t *testing.T) {
		rc := mustContext(t, "http://192.168.1.10:8080/")
		got := r.StoreURL(rc, "corner-deli")
		assert.Equal(t, "http://192.168.1.10:8080/?shop=corner-deli", got)
	})
}

func TestResolver_DiscoveryURL(t *testing.T) {
	r := newResolver()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "tenant subdomain maps back to base",
			url:  "https://corner-deli." + baseDomain + "/menu",
			want: "https://" + baseDomain + "/",
		},
		{
			name: "local tenant host keeps port",
			url:  "http://corner-deli.localhost:5173/",
			want: "http://localhost:5173/",
		},
		{
			name: "unrelated host maps to base domain",
			url:  "https://example.com/corner-deli",
			want: "https://" + baseDomain + "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.DiscoveryURL(mustContext(t, tt.url)))
		})
	}
}
