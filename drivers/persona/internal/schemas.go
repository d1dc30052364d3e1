package driver

import (
	"github.com/datazip-inc/tap-persona/constants"
	"github.com/datazip-inc/tap-persona/types"
)

const namespace = "persona"

// streamEndpoints maps stream name to its list-endpoint path.
var streamEndpoints = map[string]string{
	"inquiries": "/inquiries",
	"cases":     "/cases",
}

// field types shared by both streams
var commonFields = map[string]types.DataType{
	"id":                  types.String,
	"type":                types.String,
	"status":              types.String,
	"created_at":          types.Timestamp,
	"updated_at":          types.Timestamp,
	"relationships":       types.Object,
	constants.ExtractedAt: types.Timestamp,
}

var streamFields = map[string]map[string]types.DataType{
	"inquiries": {
		"completed_at":                types.Timestamp,
		"reference_id":                types.String,
		"inquiry_template_id":         types.String,
		"inquiry_template_version_id": types.String,
		"name_first":                  types.String,
		"name_middle":                 types.String,
		"name_last":                   types.String,
		"email_address":               types.String,
		"phone_number":                types.String,
		"address_street_1":            types.String,
		"address_street_2":            types.String,
		"address_city":                types.String,
		"address_subdivision":         types.String,
		"address_postal_code":         types.String,
		"birthdate":                   types.String,
	},
	"cases": {
		"resolved_at":              types.Timestamp,
		"name":                     types.String,
		"assignee_id":              types.String,
		"resolution":               types.String,
		"case_template_id":         types.String,
		"case_template_version_id": types.String,
	},
}

func buildStream(name string) *types.Stream {
	stream := types.NewStream(name, namespace).
		WithSyncMode(types.FULLREFRESH, types.INCREMENTAL).
		WithPrimaryKey("id").
		WithCursorField("updated_at")

	for column, typ := range commonFields {
		stream.UpsertField(column, typ, column != "id")
	}
	for column, typ := range streamFields[name] {
		stream.UpsertField(column, typ, true)
	}

	return stream
}
