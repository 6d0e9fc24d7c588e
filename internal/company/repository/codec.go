package repository

import (
	"time"

	"github.com/clearlead/decisio/internal/company/domain"
	"github.com/clearlead/decisio/internal/localstore"
)

// The codec is the single place where company field names cross the
// camelCase/snake_case boundary.

func toRow(patch domain.Patch) localstore.Record {
	row := localstore.Record{"id": patch.ID}
	if patch.Name != nil {
		row["name"] = *patch.Name
	}
	if patch.Slug != nil {
		row["slug"] = *patch.Slug
	}
	if patch.Country != nil {
		row["country"] = *patch.Country
	}
	return row
}

func fromRow(row localstore.Record) domain.Company {
	c := domain.Company{
		ID:      stringField(row, "id"),
		Name:    stringField(row, "name"),
		Slug:    stringField(row, "slug"),
		Country: stringField(row, "country"),
	}
	if raw := stringField(row, "created_at"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			c.CreatedAt = &t
		}
	}
	return c
}

func fromRows(rows []localstore.Record) []domain.Company {
	out := make([]domain.Company, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}

func stringField(row localstore.Record, key string) string {
	v, _ := row[key].(string)
	return v
}
