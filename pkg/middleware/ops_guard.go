package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/configuration"
	"github.com/NilushkaAI/vehicle-registration-frontend-new/pkg/routing"
)

// opsGuard hides ops-class routes in production. Requests pass on a CIDR or
// credential match; everything else gets the stock 404.
type opsGuard struct {
	conf       *configuration.Configuration
	log        *logrus.Logger
	classifier *routing.Classifier
	cidrs      []netip.Prefix
}

func OpsGuard(conf *configuration.Configuration, entrypoint string) mux.MiddlewareFunc {
	if conf == nil {
		conf = configuration.Use()
	}
	rules, err := routing.LoadAllowlist("", entrypoint)
	if err != nil {
		rules = nil
	}
	g := &opsGuard{
		conf:       conf,
		log:        conf.Logger(),
		classifier: routing.NewClassifier(rules),
	}
	g.cidrs = g.parseCIDRs(conf.OpsGuardCIDRs)
	return g.middleware
}

func (g *opsGuard) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.conf.GoAppEnvironment != configuration.Production || !g.conf.OpsGuardEnabled {
			next.ServeHTTP(w, r)
			return
		}

		if g.classifier.ClassifyPath(r.URL.Path) != routing.RouteClassOps {
			next.ServeHTTP(w, r)
			return
		}

		if g.ipAllowed(r) || g.tokenMatches(r) || g.basicAuthMatches(r) {
			next.ServeHTTP(w, r)
			return
		}

		if g.log != nil {
			g.log.WithFields(logrus.Fields{
				"path": r.URL.Path,
				"ip":   guardClientIP(r, g.conf.RealIPHeader),
			}).Warn("ops guard denied request")
		}
		http.NotFound(w, r)
	})
}

func (g *opsGuard) ipAllowed(r *http.Request) bool {
	if len(g.cidrs) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(guardClientIP(r, g.conf.RealIPHeader))
	if err != nil {
		return false
	}
	for _, p := range g.cidrs {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func (g *opsGuard) tokenMatches(r *http.Request) bool {
	token := strings.TrimSpace(g.conf.OpsGuardToken)
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(tokenFromRequest(r)), []byte(token)) == 1
}

func (g *opsGuard) basicAuthMatches(r *http.Request) bool {
	if strings.TrimSpace(g.conf.OpsGuardBasicAuthUser) == "" && strings.TrimSpace(g.conf.OpsGuardBasicAuthPass) == "" {
		return false
	}
	u, p, ok := r.BasicAuth()
	return ok &&
		subtle.ConstantTimeCompare([]byte(u), []byte(g.conf.OpsGuardBasicAuthUser)) == 1 &&
		subtle.ConstantTimeCompare([]byte(p), []byte(g.conf.OpsGuardBasicAuthPass)) == 1
}

func (g *opsGuard) parseCIDRs(raw string) []netip.Prefix {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]netip.Prefix, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := netip.ParsePrefix(part)
		if err != nil {
			if g.log != nil {
				g.log.Warnf("ops guard: skipping invalid CIDR %q", part)
			}
			continue
		}
		out = append(out, p)
	}
	return out
}

func tokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if t := strings.TrimSpace(r.Header.Get("X-Ops-Token")); t != "" {
		return t
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}

// guardClientIP reduces the proxy header value to a bare address for CIDR
// checks. Takes the first entry of X-Forwarded-For lists and strips ports.
func guardClientIP(r *http.Request, header string) string {
	if r == nil {
		return ""
	}
	v := ""
	if header != "" {
		v = strings.TrimSpace(r.Header.Get(header))
	}
	if v == "" {
		v = r.RemoteAddr
	}
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if host, _, err := net.SplitHostPort(v); err == nil {
		return host
	}
	return strings.TrimSpace(v)
}
