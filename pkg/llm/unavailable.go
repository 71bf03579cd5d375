package llm

import (
	"context"
)

// UnavailableGenerator fails every call with the reason it could not be
// configured, so each description takes the fallback path.
type UnavailableGenerator struct {
	Reason string
}

func (u *UnavailableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", NewError(ErrorTypeUnavailable, u.Reason, false, nil)
}

func (u *UnavailableGenerator) GetModel() string {
	return ""
}
