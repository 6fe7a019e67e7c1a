package validator

import (
	"context"
	"encoding/json"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
)

var (
	alphaRegex     = regexp.MustCompile(`^[\pL\pM]+$`)
	alphaNumRegex  = regexp.MustCompile(`^[\pL\pM\pN]+$`)
	alphaDashRegex = regexp.MustCompile(`^[\pL\pM\pN_-]+$`)
)

func isAccepted(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on", "1", "true":
		return true
	}
	return false
}

func isDeclined(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "off", "0", "false":
		return true
	}
	return false
}

func isBoolean(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "1", "0":
		return true
	}
	return false
}

// isEmail accepts a bare RFC 5322 address whose domain has at least one dot.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

func isURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func isIP(s string) bool {
	return net.ParseIP(s) != nil
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Contains(s, ".")
}

func isIPv6(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && strings.Contains(s, ":")
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isJSON(s string) bool {
	return json.Valid([]byte(s))
}

var timezoneCache sync.Map

func isTimezone(s string) bool {
	if s == "" || s == "Local" {
		return false
	}
	if ok, found := timezoneCache.Load(s); found {
		return ok.(bool)
	}
	_, err := time.LoadLocation(s)
	timezoneCache.Store(s, err == nil)
	return err == nil
}

func checkStartsWith(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	for _, p := range in.params {
		if strings.HasPrefix(in.value(), p) {
			return true, nil
		}
	}
	return false, nil
}

func checkEndsWith(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	for _, p := range in.params {
		if strings.HasSuffix(in.value(), p) {
			return true, nil
		}
	}
	return false, nil
}

var (
	regexCache     sync.Map
	delimitedRegex = regexp.MustCompile(`^/(.*)/([imsU]*)$`)
)

// compilePattern accepts Go syntax and delimited patterns like "/^a+$/i".
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	expr := pattern
	if m := delimitedRegex.FindStringSubmatch(pattern); m != nil {
		expr = m[1]
		if m[2] != "" {
			expr = "(?" + m[2] + ")" + expr
		}
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}

func checkRegex(match bool) checkFunc {
	return func(_ context.Context, _ *Validator, in checkInput) (bool, error) {
		if err := needParams(in, 1); err != nil {
			return false, err
		}
		re, err := compilePattern(in.param(0))
		if err != nil {
			return false, err
		}
		return re.MatchString(in.value()) == match, nil
	}
}

// checkActiveURL resolves the host of the URL. Lookup failures fail the rule
// rather than returning an error.
func checkActiveURL(ctx context.Context, v *Validator, in checkInput) (bool, error) {
	u, err := url.Parse(strings.TrimSpace(in.value()))
	if err != nil || u.Hostname() == "" {
		return false, nil
	}
	addrs, err := v.resolver.LookupHost(ctx, u.Hostname())
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return len(addrs) > 0, nil
}
