package totp

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPeriod is the code validity window in seconds.
const DefaultPeriod = 30

// URIParams describes an authenticator provisioning entry.
type URIParams struct {
	Issuer      string // Service name shown by authenticator apps (required)
	AccountName string // User identifier, usually the e-mail (required)
	Secret      string // Base32-encoded secret (required)
	Period      int    // Code validity in seconds (optional, defaults to 30)
}

// Validate ensures all required fields are present.
func (p URIParams) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if strings.TrimSpace(p.AccountName) == "" {
		return ErrMissingAccountName
	}
	if strings.TrimSpace(p.Issuer) == "" {
		return ErrMissingIssuer
	}
	if p.Period < 0 {
		return ErrInvalidPeriod
	}
	return nil
}

// ProvisioningURI builds the otpauth URI consumed by authenticator apps:
//
//	otpauth://totp/<issuer>:%20<account>?issuer=<issuer>&secret=<base32>&period=<period>
//
// Issuer and account are percent-encoded, spaces as %20 in both the label and
// the query; the secret is emitted as-is since the base32 alphabet needs no
// escaping.
func ProvisioningURI(p URIParams) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}

	return fmt.Sprintf("otpauth://totp/%s:%%20%s?issuer=%s&secret=%s&period=%d",
		url.PathEscape(p.Issuer),
		url.PathEscape(p.AccountName),
		queryEscape(p.Issuer),
		p.Secret,
		p.Period,
	), nil
}

// queryEscape is url.QueryEscape with spaces as %20; some authenticator apps
// show a literal "+" in the issuer.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
