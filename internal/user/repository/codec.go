package repository

import (
	"github.com/clearlead/decisio/internal/localstore"
	"github.com/clearlead/decisio/internal/user/domain"
)

// The codec is the single place where user field names cross the
// camelCase/snake_case boundary. Filters translate through the same table.

func toRow(patch domain.Patch) localstore.Record {
	row := localstore.Record{"id": patch.ID}
	if patch.Email != nil {
		row["email"] = *patch.Email
	}
	if patch.Role != nil {
		row["role"] = string(*patch.Role)
	}
	if patch.CompanyID != nil {
		if *patch.CompanyID == "" {
			row["company_id"] = nil
		} else {
			row["company_id"] = *patch.CompanyID
		}
	}
	if patch.Plan != nil {
		row["plan"] = string(*patch.Plan)
	}
	if patch.Name != nil {
		row["name"] = *patch.Name
	}
	if patch.Surname != nil {
		row["surname"] = *patch.Surname
	}
	if patch.DOB != nil {
		row["dob"] = *patch.DOB
	}
	if patch.Identification != nil {
		row["identification"] = *patch.Identification
	}
	if patch.Position != nil {
		row["position"] = *patch.Position
	}
	if patch.Team != nil {
		row["team"] = *patch.Team
	}
	return row
}

func fromRow(row localstore.Record) domain.User {
	return domain.User{
		ID:             stringField(row, "id"),
		Email:          stringField(row, "email"),
		Role:           domain.Role(stringField(row, "role")),
		CompanyID:      stringField(row, "company_id"),
		Plan:           domain.Plan(stringField(row, "plan")),
		Name:           stringField(row, "name"),
		Surname:        stringField(row, "surname"),
		DOB:            stringField(row, "dob"),
		Identification: stringField(row, "identification"),
		Position:       stringField(row, "position"),
		Team:           stringField(row, "team"),
	}
}

func fromRows(rows []localstore.Record) []domain.User {
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}

// matches applies the List filter to a local row, using the same remote
// field names the cloud query uses.
func matches(row localstore.Record, filter domain.Filter) bool {
	if filter.CompanyID != "" && stringField(row, "company_id") != filter.CompanyID {
		return false
	}
	if filter.Role != "" && stringField(row, "role") != string(filter.Role) {
		return false
	}
	if filter.Email != "" && stringField(row, "email") != filter.Email {
		return false
	}
	return true
}

func stringField(row localstore.Record, key string) string {
	v, _ := row[key].(string)
	return v
}
