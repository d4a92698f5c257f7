package service

import "context"

// EchoGenerator answers without calling any model. It is the default backend
// so the server runs with no credentials configured.
type EchoGenerator struct{}

func NewEchoGenerator() *EchoGenerator {
	return &EchoGenerator{}
}

func (g *EchoGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", generationFailure("echo", err)
	}
	return "Echo: " + prompt, nil
}
