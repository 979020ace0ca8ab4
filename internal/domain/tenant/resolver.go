package tenant

import (
	"net"
	"net/url"
	"strings"
)

// Query parameters that force a tenant regardless of host or path shape.
// "hotel" predates the shop rename and stays accepted for old links.
const (
	QueryParam       = "shop"
	LegacyQueryParam = "hotel"
)

// Path segments owned by the platform itself. A path starting with one of
// these is never a storefront page.
var reservedSegments = map[string]struct{}{
	"join":    {},
	"terms":   {},
	"privacy": {},
	"about":   {},
	"manage":  {},
	"auth":    {},
}

// RequestContext is the read-only slice of the current navigation the
// resolver looks at.
type RequestContext struct {
	Scheme string
	Host   string // hostname, optionally with port
	Path   string
	Query  url.Values
}

func ContextFromURL(u *url.URL) RequestContext {
	return RequestContext{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   u.Path,
		Query:  u.Query(),
	}
}

// Resolver derives a tenant id from a request context and builds URLs that
// resolve back to the same tenant. It supports three deployment topologies:
// per-tenant subdomains under a production base domain, subdomains under a
// local dev label, and path-based routing where neither is available.
type Resolver struct {
	baseDomain string
	localLabel string
}

func NewResolver(baseDomain, localLabel string) *Resolver {
	return &Resolver{
		baseDomain: strings.ToLower(baseDomain),
		localLabel: strings.ToLower(localLabel),
	}
}

// Resolve returns the tenant id for the navigation, or false when the page is
// platform-level (discovery, join, legal, admin, auth). False is not an
// error; callers render the platform UI.
//
// Priority: query override > host subdomain > first path segment.
func (r *Resolver) Resolve(rc RequestContext) (ID, bool) {
	if rc.Query != nil {
		for _, param := range []string{QueryParam, LegacyQueryParam} {
			if v := rc.Query.Get(param); v != "" {
				return ID(v), true
			}
		}
	}

	if id, ok := r.resolveHost(rc.Host); ok {
		return id, true
	}

	return r.resolvePath(rc.Path)
}

func (r *Resolver) resolveHost(host string) (ID, bool) {
	hostname := strings.ToLower(stripPort(host))
	if hostname == "" || net.ParseIP(hostname) != nil {
		return "", false
	}

	for _, base := range []string{r.localLabel, r.baseDomain} {
		if base == "" || hostname == base {
			continue
		}
		if lead, ok := strings.CutSuffix(hostname, "."+base); ok {
			// The leading label is the tenant; deeper labels belong to it.
			if first, _, _ := strings.Cut(lead, "."); first != "" {
				return ID(first), true
			}
		}
	}
	return "", false
}

func (r *Resolver) resolvePath(path string) (ID, bool) {
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		if _, reserved := reservedSegments[segment]; reserved {
			return "", false
		}
		return ID(segment), true
	}
	return "", false
}

// DiscoveryURL returns the absolute URL of the platform landing page for the
// deployment the context was served from.
func (r *Resolver) DiscoveryURL(rc RequestContext) string {
	scheme, host := r.baseParts(rc)
	return scheme + "://" + host + "/"
}

// StoreURL returns an absolute URL that Resolve maps back to id. Hosts that
// cannot take a subdomain label (single-label hosts, IP literals) get the
// query-parameter form instead.
func (r *Resolver) StoreURL(rc RequestContext, id ID) string {
	scheme, host := r.baseParts(rc)
	hostname := stripPort(host)
	if net.ParseIP(hostname) != nil || !strings.Contains(hostname, ".") {
		return scheme + "://" + host + "/?" + QueryParam + "=" + url.QueryEscape(string(id))
	}
	return scheme + "://" + string(id) + "." + host + "/"
}

// baseParts reduces the current host to the discovery host: dev hosts keep
// their port but drop any tenant label; everything else maps to the
// production base domain.
func (r *Resolver) baseParts(rc RequestContext) (string, string) {
	scheme := rc.Scheme
	if scheme == "" {
		scheme = "https"
	}

	hostname := strings.ToLower(stripPort(rc.Host))
	port := portOf(rc.Host)

	if net.ParseIP(hostname) != nil {
		return scheme, rc.Host
	}
	if hostname == r.localLabel || strings.HasSuffix(hostname, "."+r.localLabel) {
		host := r.localLabel
		if port != "" {
			host += ":" + port
		}
		return scheme, host
	}
	return scheme, r.baseDomain
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func portOf(host string) string {
	if _, p, err := net.SplitHostPort(host); err == nil {
		return p
	}
	return ""
}
