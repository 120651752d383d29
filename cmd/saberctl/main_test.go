package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agenthands/saber/internal/app"
	"github.com/agenthands/saber/internal/config"
	"github.com/agenthands/saber/internal/core/catalog"
	"github.com/agenthands/saber/internal/core/model"
	"github.com/agenthands/saber/internal/core/resolver"
)

type stubLLM struct {
	response string
}

func (s *stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, nil
}

func useStubApp(t *testing.T, response string) {
	t.Helper()
	orig := newApp
	newApp = func(ctx context.Context) (*app.App, error) {
		cfg := config.Default()
		cat := catalog.MustBundled()
		return &app.App{
			Config:   cfg,
			Logger:   zap.NewNop(),
			Catalog:  cat,
			Resolver: resolver.New(&stubLLM{response: response}, cat, cfg, zap.NewNop()),
		}, nil
	}
	t.Cleanup(func() { newApp = orig })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchCommand_FallsBackToCatalogue(t *testing.T) {
	useStubApp(t, `{"suggestions": []}`)

	out, err := run(t, "search", "gimnasio", "moderno")
	require.NoError(t, err)

	var results []model.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Gimnasio Moderno", results[0].FullName)
	assert.Equal(t, model.SourceLocal, results[0].Source)
}

func TestValidateCommand(t *testing.T) {
	useStubApp(t, `{"existe": false}`)

	out, err := run(t, "validate", "Colegio", "Fantasma", "--municipality", "Tunja")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)

	out, err = run(t, "validate", "INEM Medellín", "--municipality", "")
	require.NoError(t, err)
	var inst model.Candidate
	require.NoError(t, json.Unmarshal([]byte(out), &inst))
	assert.Equal(t, "Institución Educativa INEM José Félix de Restrepo", inst.FullName)
}

func TestCatalogList(t *testing.T) {
	useStubApp(t, "")

	out, err := run(t, "catalog", "list")
	require.NoError(t, err)

	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, catalog.MustBundled().Len(), len(entries))
}

func TestCatalogImport_RequiresMemgraph(t *testing.T) {
	useStubApp(t, "")

	path := filepath.Join(t.TempDir(), "extra.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[institution]]\nname = \"Colegio Boyacá\"\nmunicipality = \"Tunja\"\n"), 0o644))

	_, err := run(t, "catalog", "import", path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "memgraph is not configured")
}
