package islgloss

import (
	"context"
	"fmt"
)

// Annotate segments text and annotates its words through the service
func (m *Manager) Annotate(ctx context.Context, text string) ([]Sentence, error) {
	if !m.IsReady() {
		return nil, ErrServiceNotReady
	}

	sentences, err := m.client.Annotate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("annotation failed: %w", err)
	}
	return sentences, nil
}

// Parse returns the constituency parse of one tokenized sentence
func (m *Manager) Parse(ctx context.Context, words []string) (*Tree, error) {
	if !m.IsReady() {
		return nil, ErrServiceNotReady
	}

	tree, err := m.client.Parse(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return tree, nil
}

// Translator returns a translator backed by this manager's service
func (m *Manager) Translator(opts ...TranslatorOption) *Translator {
	return NewTranslator(m, m, opts...)
}

// Translate converts text to gloss tokens with the embedded vocabulary
func (m *Manager) Translate(ctx context.Context, text string) (Mapping, error) {
	return m.Translator().Translate(ctx, text)
}

// GetVersion returns the Stanza version reported by the service
func (m *Manager) GetVersion(ctx context.Context) (string, error) {
	if !m.IsReady() {
		return "", ErrServiceNotReady
	}

	health, err := m.client.Health(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get version: %w", err)
	}

	return health.Version, nil
}

// Package-level convenience functions

// Translate converts text using the default manager
func Translate(text string) (Mapping, error) {
	ctx := context.Background()
	mgr, err := getOrCreateDefaultManager(ctx)
	if err != nil {
		return nil, err
	}
	return mgr.Translate(ctx, text)
}

// Annotate segments and annotates text using the default manager
func Annotate(text string) ([]Sentence, error) {
	ctx := context.Background()
	mgr, err := getOrCreateDefaultManager(ctx)
	if err != nil {
		return nil, err
	}
	return mgr.Annotate(ctx, text)
}

// GetVersion returns the Stanza version of the default manager's service
func GetVersion() (string, error) {
	ctx := context.Background()
	mgr, err := getOrCreateDefaultManager(ctx)
	if err != nil {
		return "", err
	}
	return mgr.GetVersion(ctx)
}

var (
	_ Annotator = (*Manager)(nil)
	_ Parser    = (*Manager)(nil)
)
