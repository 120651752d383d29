package resolver

import (
	"context"
	"sync"

	"github.com/agenthands/saber/internal/core/model"
)

type MockLLM struct {
	mu            sync.Mutex
	Response      string
	ResponseQueue []string
	Err           error
	Panic         bool
	Calls         int
	Prompts       []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	if m.Panic {
		panic("sdk exploded")
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

// countingTable wraps a LocalTable and counts how it is used.
type countingTable struct {
	LocalTable
	searches int
	lookups  int
}

func (c *countingTable) Search(query string) []model.Candidate {
	c.searches++
	return c.LocalTable.Search(query)
}

func (c *countingTable) Lookup(name, municipality string) (model.Candidate, bool) {
	c.lookups++
	return c.LocalTable.Lookup(name, municipality)
}
