package repository

import (
	"encoding/json"
	"time"

	"github.com/clearlead/decisio/internal/decision/domain"
	"github.com/clearlead/decisio/internal/localstore"
)

// The codec is the single place where decision field names cross the
// camelCase/snake_case boundary. Steps and the final report travel as
// opaque JSON blobs and keep their camelCase keys inside both stores.

func toRow(d domain.Decision) localstore.Record {
	row := localstore.Record{
		"id":         d.ID,
		"user_id":    d.UserID,
		"title":      d.Title,
		"steps":      toJSONValue(d.Steps),
		"created_at": d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if d.UserName != "" {
		row["user_name"] = d.UserName
	}
	if d.FinalReport != nil {
		row["final_report"] = toJSONValue(d.FinalReport)
	}
	return row
}

// insertPayload is the remote write shape: the backend assigns id and
// created_at and hands the canonical row back via return=representation.
func insertPayload(d domain.Decision) localstore.Record {
	return localstore.Record{
		"user_id":      d.UserID,
		"title":        d.Title,
		"steps":        toJSONValue(d.Steps),
		"final_report": toJSONValue(d.FinalReport),
	}
}

func fromRow(row localstore.Record) domain.Decision {
	d := domain.Decision{
		ID:       stringField(row, "id"),
		UserID:   stringField(row, "user_id"),
		UserName: stringField(row, "user_name"),
		Title:    stringField(row, "title"),
	}
	decodeJSONValue(row["steps"], &d.Steps)
	if row["final_report"] != nil {
		var report domain.FinalReport
		decodeJSONValue(row["final_report"], &report)
		d.FinalReport = &report
	}
	if raw := stringField(row, "created_at"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			d.CreatedAt = t
		}
	}

	// Admin reads embed the owning user; denormalize for display.
	if users, ok := row["users"].(map[string]any); ok {
		name, _ := users["name"].(string)
		surname, _ := users["surname"].(string)
		if name != "" || surname != "" {
			d.UserName = trimJoin(name, surname)
		}
	}
	return d
}

func fromRows(rows []localstore.Record) []domain.Decision {
	out := make([]domain.Decision, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}

// embeddedCompanyID reads the company of the embedded user row, empty when
// the relation was not embedded.
func embeddedCompanyID(row localstore.Record) string {
	users, ok := row["users"].(map[string]any)
	if !ok {
		return ""
	}
	companyID, _ := users["company_id"].(string)
	return companyID
}

func toJSONValue(v any) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

func decodeJSONValue(v any, target any) {
	if v == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = json.Unmarshal(b, target)
}

func trimJoin(name, surname string) string {
	if name == "" {
		return surname
	}
	if surname == "" {
		return name
	}
	return name + " " + surname
}

func stringField(row localstore.Record, key string) string {
	v, _ := row[key].(string)
	return v
}
