package mock

import "github.com/osokin/leadscout"

var _ leadscout.PromptService = (*PromptService)(nil)

// PromptService is a mock implementation of leadscout.PromptService.
type PromptService struct {
	GetFn    func(name string) (string, error)
	UpdateFn func(name, text string) (string, error)
	ResetFn  func(name string) (string, error)
}

func (p *PromptService) Get(name string) (string, error) {
	return p.GetFn(name)
}

func (p *PromptService) Update(name, text string) (string, error) {
	return p.UpdateFn(name, text)
}

func (p *PromptService) Reset(name string) (string, error) {
	return p.ResetFn(name)
}
