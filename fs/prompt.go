// Package fs provides file-based prompt storage and the CSV output sink.
package fs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/osokin/leadscout"
)

// Ensure Prompts implements leadscout.PromptService at compile time.
var _ leadscout.PromptService = (*Prompts)(nil)

// Prompts stores prompt templates as files in a directory. The current
// text of prompt "extraction" lives in extraction.txt; its factory
// default lives in extraction_default.txt and is never modified.
type Prompts struct {
	dir string
}

// NewPrompts creates a Prompts store backed by the given directory.
func NewPrompts(dir string) *Prompts {
	return &Prompts{dir: dir}
}

func (p *Prompts) path(name string) string {
	return filepath.Join(p.dir, name+".txt")
}

func (p *Prompts) defaultPath(name string) string {
	return filepath.Join(p.dir, name+"_default.txt")
}

// Get returns the current text of the named prompt. If the prompt has
// never been customized, the default text is returned.
func (p *Prompts) Get(name string) (string, error) {
	b, err := os.ReadFile(p.path(name))
	if os.IsNotExist(err) {
		b, err = os.ReadFile(p.defaultPath(name))
	}
	if os.IsNotExist(err) {
		return "", leadscout.Errorf(leadscout.ENOTFOUND, "prompt %q not found", name)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Update replaces the current text of the named prompt and returns it.
// The default text is left untouched, so Reset can always recover it.
func (p *Prompts) Update(name, text string) (string, error) {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(p.path(name), []byte(text), 0644); err != nil {
		return "", err
	}
	return text, nil
}

// Reset restores the named prompt to its default text and returns it.
func (p *Prompts) Reset(name string) (string, error) {
	b, err := os.ReadFile(p.defaultPath(name))
	if os.IsNotExist(err) {
		return "", leadscout.Errorf(leadscout.ENOTFOUND, "prompt %q has no default", name)
	}
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(p.path(name), b, 0644); err != nil {
		return "", err
	}
	return string(b), nil
}

// SeedDefaults writes the given default texts into the directory,
// skipping any default file that already exists. It lets a fresh
// installation start with working prompts without clobbering edits.
func (p *Prompts) SeedDefaults(defaults map[string]string) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return err
	}
	for name, text := range defaults {
		path := p.defaultPath(name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return err
		}
	}
	return nil
}

// Ensure CachedPrompts implements leadscout.PromptService at compile time.
var _ leadscout.PromptService = (*CachedPrompts)(nil)

// CachedPrompts wraps a PromptService and memoizes reads. Updates and
// resets write through and refresh the cached entry.
type CachedPrompts struct {
	mu    sync.Mutex
	cache map[string]string
	next  leadscout.PromptService
}

// NewCachedPrompts creates a read-through cache in front of next.
func NewCachedPrompts(next leadscout.PromptService) *CachedPrompts {
	return &CachedPrompts{
		cache: make(map[string]string),
		next:  next,
	}
}

func (c *CachedPrompts) Get(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if text, ok := c.cache[name]; ok {
		return text, nil
	}
	text, err := c.next.Get(name)
	if err != nil {
		return "", err
	}
	c.cache[name] = text
	return text, nil
}

func (c *CachedPrompts) Update(name, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated, err := c.next.Update(name, text)
	if err != nil {
		return "", err
	}
	c.cache[name] = updated
	return updated, nil
}

func (c *CachedPrompts) Reset(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text, err := c.next.Reset(name)
	if err != nil {
		return "", err
	}
	c.cache[name] = text
	return text, nil
}
