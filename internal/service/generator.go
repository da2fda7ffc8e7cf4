//go:generate mockery --name Generator --output ./mocks --outpkg mocks --case=underscore
package service

import "context"

// Generator turns a prompt into free text. Implementations make exactly one
// request per call and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
