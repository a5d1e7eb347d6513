package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// Resolver is the subset of *net.Resolver used for domain checks.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// IsEmailDomainValid reports whether the domain part of email has an MX
// or address record, using the system resolver.
func IsEmailDomainValid(email string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	return EmailDomainResolves(ctx, net.DefaultResolver, email)
}

func EmailDomainResolves(ctx context.Context, r Resolver, email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func emailDomain(email string) (string, bool) {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}

	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", false
	}
	return domain, true
}
