package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/saber/internal/driver"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func TestLoadFromGraph(t *testing.T) {
	keys := []string{"name", "aliases", "municipality", "department", "sector", "level", "dane_code"}
	mockDriver := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{Keys: keys, Values: []interface{}{"Colegio Berchmans", []interface{}{"Berchmans"}, "Cali", "Valle del Cauca", "Privado", "Media", "176001000999"}},
				{Keys: keys, Values: []interface{}{"Colegio Nuevo", nil, "Tunja", "Boyacá", "Público", nil, nil}},
			},
		},
	}

	entries, err := LoadFromGraph(context.Background(), mockDriver)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, driver.ListInstitutionsQuery, mockDriver.QueryExecuted)
	assert.Equal(t, []string{"Berchmans"}, entries[0].Aliases)
	assert.Equal(t, "176001000999", entries[0].DaneCode)
	assert.Equal(t, "Tunja", entries[1].Municipality)
	assert.Empty(t, entries[1].Aliases)
	assert.Equal(t, "", entries[1].Level)
}

func TestLoadFromGraph_Error(t *testing.T) {
	_, err := LoadFromGraph(context.Background(), &MockDriver{Err: fmt.Errorf("db error")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestSaveToGraph(t *testing.T) {
	orig := NewUUID
	NewUUID = func() string { return "uuid-1" }
	defer func() { NewUUID = orig }()

	mockDriver := &MockDriver{}
	id, err := SaveToGraph(context.Background(), mockDriver, Entry{Name: " Colegio Berchmans ", Municipality: "Cali", Sector: "Privado"})
	require.NoError(t, err)

	assert.Equal(t, "uuid-1", id)
	assert.Equal(t, driver.SaveInstitutionQuery, mockDriver.QueryExecuted)
	assert.Equal(t, "colegio berchmans|cali", mockDriver.QueryParams["key"])
	assert.Equal(t, "Colegio Berchmans", mockDriver.QueryParams["name"])
	assert.Equal(t, []string{}, mockDriver.QueryParams["aliases"])
}

func TestSaveToGraph_ReturnsStoredUUID(t *testing.T) {
	mockDriver := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{{Keys: []string{"uuid"}, Values: []interface{}{"existing-uuid"}}},
		},
	}
	id, err := SaveToGraph(context.Background(), mockDriver, Entry{Name: "Colegio Berchmans"})
	require.NoError(t, err)
	assert.Equal(t, "existing-uuid", id)
}

func TestSaveToGraph_Errors(t *testing.T) {
	_, err := SaveToGraph(context.Background(), &MockDriver{}, Entry{})
	assert.Error(t, err)

	_, err = SaveToGraph(context.Background(), &MockDriver{Err: fmt.Errorf("db error")}, Entry{Name: "X"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestDeleteFromGraph(t *testing.T) {
	mockDriver := &MockDriver{}
	require.NoError(t, DeleteFromGraph(context.Background(), mockDriver, Entry{Name: "Colegio Berchmans", Municipality: "Cali"}))
	assert.Equal(t, driver.DeleteInstitutionQuery, mockDriver.QueryExecuted)
	assert.Equal(t, "colegio berchmans|cali", mockDriver.QueryParams["key"])
}
