package graph

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKnowledgeBase is an in-memory KnowledgeBase test double shared across
// the package tests.
type fakeKnowledgeBase struct {
	search    map[string]string
	labels    map[string]string
	claims    map[string]map[string][]string
	searchErr map[string]error
	labelErr  map[string]error
	claimsErr map[string]error
}

func newFakeKnowledgeBase() *fakeKnowledgeBase {
	return &fakeKnowledgeBase{
		search:    make(map[string]string),
		labels:    make(map[string]string),
		claims:    make(map[string]map[string][]string),
		searchErr: make(map[string]error),
		labelErr:  make(map[string]error),
		claimsErr: make(map[string]error),
	}
}

func (f *fakeKnowledgeBase) SearchEntity(ctx context.Context, text string) (string, error) {
	if err := f.searchErr[text]; err != nil {
		return "", err
	}
	return f.search[text], nil
}

func (f *fakeKnowledgeBase) GetLabel(ctx context.Context, id string) (string, error) {
	if err := f.labelErr[id]; err != nil {
		return "", err
	}
	return f.labels[id], nil
}

func (f *fakeKnowledgeBase) GetClaims(ctx context.Context, id string) (map[string][]string, error) {
	if err := f.claimsErr[id]; err != nil {
		return nil, err
	}
	return f.claims[id], nil
}

func newTestResolver(kb KnowledgeBase) *Resolver {
	r := NewResolver(kb)
	r.delay = 0
	return r
}

func TestResolveSuccess(t *testing.T) {
	kb := newFakeKnowledgeBase()
	kb.search["Alan Turing"] = "Q7251"
	kb.labels["Q7251"] = "Alan Turing"

	span := EntitySpan{Text: "Alan Turing", Type: EntityTypePerson, Start: 0, End: 11}
	entity, ok := newTestResolver(kb).Resolve(context.Background(), span)

	require.True(t, ok)
	assert.Equal(t, "Q7251", entity.QID)
	assert.Equal(t, "Alan Turing", entity.Label)
	assert.Equal(t, span, entity.EntitySpan)
}

func TestResolveNoMatchDropsSpan(t *testing.T) {
	kb := newFakeKnowledgeBase()

	_, ok := newTestResolver(kb).Resolve(context.Background(), EntitySpan{Text: "Xyzzy Qwfp"})
	assert.False(t, ok)
}

func TestResolveUnlabeledMatchDropsSpan(t *testing.T) {
	kb := newFakeKnowledgeBase()
	kb.search["Obscurity"] = "Q999999"

	_, ok := newTestResolver(kb).Resolve(context.Background(), EntitySpan{Text: "Obscurity"})
	assert.False(t, ok)
}

func TestResolveTransportFailureDropsSpan(t *testing.T) {
	kb := newFakeKnowledgeBase()
	kb.searchErr["Alan Turing"] = errors.New("connection timed out")

	_, ok := newTestResolver(kb).Resolve(context.Background(), EntitySpan{Text: "Alan Turing"})
	assert.False(t, ok)
}

func TestResolveLabelTransportFailureDropsSpan(t *testing.T) {
	kb := newFakeKnowledgeBase()
	kb.search["Alan Turing"] = "Q7251"
	kb.labelErr["Q7251"] = errors.New("503 service unavailable")

	_, ok := newTestResolver(kb).Resolve(context.Background(), EntitySpan{Text: "Alan Turing"})
	assert.False(t, ok)
}

func TestResolveAllKeepsOnlyResolvedInOrder(t *testing.T) {
	kb := newFakeKnowledgeBase()
	kb.search["Alan Turing"] = "Q7251"
	kb.labels["Q7251"] = "Alan Turing"
	kb.search["United Kingdom"] = "Q145"
	kb.labels["Q145"] = "United Kingdom"

	spans := []EntitySpan{
		{Text: "Alan Turing", Type: EntityTypePerson},
		{Text: "Xyzzy Qwfp", Type: EntityTypePerson},
		{Text: "United Kingdom", Type: EntityTypeGPE},
	}

	resolved := newTestResolver(kb).ResolveAll(context.Background(), spans)

	require.Len(t, resolved, 2)
	assert.Equal(t, "Q7251", resolved[0].QID)
	assert.Equal(t, "Q145", resolved[1].QID)
}

func TestResolveAllEmptyInput(t *testing.T) {
	resolved := newTestResolver(newFakeKnowledgeBase()).ResolveAll(context.Background(), nil)
	assert.Empty(t, resolved)
}
