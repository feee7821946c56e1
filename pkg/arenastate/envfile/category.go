package envfile

import (
	"regexp"
	"slices"
	"strings"
)

type Category int

const (
	CategoryRuntime Category = iota
	CategoryCredential
	CategoryEndpoint
	CategoryArtifact
)

func (c Category) String() string {
	switch c {
	case CategoryCredential:
		return "credential"
	case CategoryEndpoint:
		return "endpoint"
	case CategoryArtifact:
		return "artifact"
	default:
		return "runtime"
	}
}

var credentialReference = regexp.MustCompile(`^[a-z][a-z0-9]*:[0-9]+$`)

// IsCredentialReference reports whether value has the provider:index shape,
// e.g. hardhat:0. The value is not interpreted further.
func IsCredentialReference(value string) bool {
	return credentialReference.MatchString(value)
}

func Categorize(v Variable) Category {
	switch {
	case strings.HasSuffix(v.Name, "_KEY"), IsCredentialReference(v.Value):
		return CategoryCredential
	case strings.HasSuffix(v.Name, "_URL"),
		strings.HasPrefix(v.Value, "http://"),
		strings.HasPrefix(v.Value, "https://"):
		return CategoryEndpoint
	case strings.HasSuffix(v.Name, "_IMAGE"),
		strings.HasSuffix(v.Name, "_DIGEST"),
		strings.HasPrefix(v.Value, "sha256:"):
		return CategoryArtifact
	}
	return CategoryRuntime
}

// PublicProviders name the providers whose mnemonic is published, so their
// provider:index references reveal no secret.
var PublicProviders = []string{"hardhat"}

// Redacted returns a copy of the surface with credential values masked.
// Placeholders and references to PublicProviders are kept.
func (s *Surface) Redacted() *Surface {
	return s.RedactedWith(PublicProviders...)
}

// RedactedWith is Redacted keeping provider:index references to providers.
// A value of that shape naming any other provider is masked like a secret.
func (s *Surface) RedactedWith(providers ...string) *Surface {
	out := s.Clone()
	for i, v := range out.vars {
		if Categorize(v) != CategoryCredential || v.Value == "" {
			continue
		}
		if _, ok := IsPlaceholder(v.Value); ok || isPublicReference(v.Value, providers) {
			continue
		}
		out.vars[i].Value = "********"
	}
	return out
}

func isPublicReference(value string, providers []string) bool {
	if !IsCredentialReference(value) {
		return false
	}
	provider, _, _ := strings.Cut(value, ":")
	return slices.Contains(providers, provider)
}
