package profiles

import (
	"fmt"

	"github.com/PolarWolf314/tuatara/internal/errors"
	"github.com/PolarWolf314/tuatara/internal/generator"
)

// Policy is a built-in compliance preset. Applying a policy raises the
// request to the policy's floor; it never weakens an already stronger
// request.
type Policy struct {
	Name            string
	Label           string
	Description     string
	MinimumLength   int
	RecommendedBits float64

	allowed     []string
	avoidRepeat bool
}

var policies = []Policy{
	{
		Name:            "windows-ad",
		Label:           "Windows Active Directory",
		Description:     "Requires 14+ characters including upper, lower, digits, and symbols.",
		MinimumLength:   14,
		RecommendedBits: 84,
		allowed:         []string{"upperletter", "lowerletter", "digit", "symbol2"},
	},
	{
		Name:            "pci-dss",
		Label:           "PCI DSS",
		Description:     "Minimum 12 characters with mixed character classes per PCI DSS 4.0.",
		MinimumLength:   12,
		RecommendedBits: 72,
		allowed:         []string{"upperletter", "lowerletter", "digit", "symbol2"},
	},
	{
		Name:            "nist-high",
		Label:           "NIST SP 800-63B High",
		Description:     "High assurance memorized secret guidance (16+ characters).",
		MinimumLength:   16,
		RecommendedBits: 96,
		allowed:         []string{"upperletter", "lowerletter", "digit", "symbol2"},
		avoidRepeat:     true,
	},
}

var policyAliases = map[string]string{
	"windows": "windows-ad",
	"ad":      "windows-ad",
	"pci":     "pci-dss",
	"nist":    "nist-high",
}

// LookupPolicy finds a policy by name or alias.
func LookupPolicy(name string) (Policy, error) {
	if canonical, ok := policyAliases[name]; ok {
		name = canonical
	}
	for _, p := range policies {
		if p.Name == name {
			return p, nil
		}
	}
	return Policy{}, fmt.Errorf("%w: unknown policy %q", errors.ErrInvalidRequest, name)
}

// PolicyNames returns the canonical policy names.
func PolicyNames() []string {
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = p.Name
	}
	return names
}

// Apply enforces the policy on a request: character mode, the policy's
// character classes, and at least the minimum length.
func (p Policy) Apply(req *generator.Request) {
	req.Mode = generator.ModeCharacter
	req.Pattern = ""
	req.Allowed = append([]string(nil), p.allowed...)
	req.AvoidRepeat = p.avoidRepeat
	if req.Length < p.MinimumLength {
		req.Length = p.MinimumLength
	}
}
