package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/saber/internal/driver"
)

// NewUUID is swapped in tests.
var NewUUID = func() string { return uuid.New().String() }

// LoadFromGraph reads every stored institution.
func LoadFromGraph(ctx context.Context, d driver.GraphDriver) ([]Entry, error) {
	res, err := d.ExecuteQuery(ctx, driver.ListInstitutionsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load institutions: %w", err)
	}

	entries := make([]Entry, 0, len(res.Records))
	for _, rec := range res.Records {
		get := func(key string) string {
			v, _ := rec.Get(key)
			s, _ := v.(string)
			return s
		}
		e := Entry{
			Name:         get("name"),
			Municipality: get("municipality"),
			Department:   get("department"),
			Sector:       get("sector"),
			Level:        get("level"),
			DaneCode:     get("dane_code"),
		}
		if raw, ok := rec.Get("aliases"); ok {
			e.Aliases = toStrings(raw)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SaveToGraph upserts an entry by Key and returns the node's uuid.
func SaveToGraph(ctx context.Context, d driver.GraphDriver, e Entry) (string, error) {
	if strings.TrimSpace(e.Name) == "" {
		return "", fmt.Errorf("institution name is required")
	}
	aliases := e.Aliases
	if aliases == nil {
		aliases = []string{}
	}

	params := map[string]interface{}{
		"uuid":         NewUUID(),
		"key":          e.Key(),
		"name":         strings.TrimSpace(e.Name),
		"aliases":      aliases,
		"municipality": strings.TrimSpace(e.Municipality),
		"department":   strings.TrimSpace(e.Department),
		"sector":       strings.TrimSpace(e.Sector),
		"level":        strings.TrimSpace(e.Level),
		"dane_code":    strings.TrimSpace(e.DaneCode),
		"created_at":   time.Now().UTC().Format(time.RFC3339),
	}

	res, err := d.ExecuteQuery(ctx, driver.SaveInstitutionQuery, params)
	if err != nil {
		return "", fmt.Errorf("failed to save institution %q: %w", e.Name, err)
	}
	if len(res.Records) > 0 {
		if v, ok := res.Records[0].Get("uuid"); ok {
			if id, ok := v.(string); ok {
				return id, nil
			}
		}
	}
	return params["uuid"].(string), nil
}

// DeleteFromGraph removes the stored entry with the same Key, if any.
func DeleteFromGraph(ctx context.Context, d driver.GraphDriver, e Entry) error {
	if _, err := d.ExecuteQuery(ctx, driver.DeleteInstitutionQuery, map[string]interface{}{"key": e.Key()}); err != nil {
		return fmt.Errorf("failed to delete institution %q: %w", e.Name, err)
	}
	return nil
}

func toStrings(v interface{}) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []interface{}:
		out := make([]string, 0, len(vs))
		for _, x := range vs {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
