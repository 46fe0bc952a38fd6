package audit

import (
	"sort"
	"strings"
)

// Allowlist is a configured set of trusted hostnames for citation
// validation. It is pure data: adding a domain never touches matching
// logic, and an empty allowlist is valid configuration (the citation
// criterion then fails closed).
type Allowlist struct {
	hosts map[string]struct{}
}

// NewAllowlist builds an allowlist from hostnames. Entries are lowercased
// and trimmed; empty entries are dropped.
func NewAllowlist(hosts []string) *Allowlist {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		h = canonicalHost(h)
		if h == "" {
			continue
		}
		set[h] = struct{}{}
	}
	return &Allowlist{hosts: set}
}

// Contains reports whether host exactly matches, or is a subdomain of, an
// allow-listed entry. Subdomains match on dot boundaries only, so
// "evil-pmc.ncbi.nlm.nih.gov.attacker.com" does not match
// "pmc.ncbi.nlm.nih.gov". Matching is case-insensitive.
func (a *Allowlist) Contains(host string) bool {
	host = canonicalHost(host)
	for host != "" {
		if _, ok := a.hosts[host]; ok {
			return true
		}
		dot := strings.IndexByte(host, '.')
		if dot < 0 {
			break
		}
		host = host[dot+1:]
	}
	return false
}

// Empty reports whether no hosts are configured.
func (a *Allowlist) Empty() bool {
	return len(a.hosts) == 0
}

// Hosts returns the configured hostnames, sorted.
func (a *Allowlist) Hosts() []string {
	out := make([]string, 0, len(a.hosts))
	for h := range a.hosts {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// canonicalHost lowercases, trims whitespace and a trailing dot.
func canonicalHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}
