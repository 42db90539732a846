package extract

import (
	"os"
	"strings"

	"pdfxtract/internal/common"
)

// credentialSources is the priority order of credential env names. The first
// non-empty value wins and is passed explicitly to the service.
var credentialSources = []string{"GOOGLE_API_KEY", "OPENAI_API_KEY", "LANGEXTRACT_API_KEY"}

// EnvCredentialProvider resolves the credential from a prioritized list of
// environment variable names. It is constructed once at the boundary and
// injected; nothing downstream probes the environment.
type EnvCredentialProvider struct {
	sources []string
	lookup  func(string) string
}

func NewEnvCredentialProvider() *EnvCredentialProvider {
	return &EnvCredentialProvider{sources: credentialSources, lookup: os.Getenv}
}

func (p *EnvCredentialProvider) Resolve() (string, error) {
	for _, name := range p.sources {
		if v := strings.TrimSpace(p.lookup(name)); v != "" {
			return v, nil
		}
	}
	return "", common.NewAppError("CREDENTIAL",
		"no API key found in "+strings.Join(p.sources, ", "), common.ErrCredentialMissing)
}

// StaticCredential wraps an already-resolved credential value.
type StaticCredential string

func (s StaticCredential) Resolve() (string, error) {
	if s == "" {
		return "", common.NewAppError("CREDENTIAL", "empty credential", common.ErrCredentialMissing)
	}
	return string(s), nil
}
