package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/metamodelgen/internal/domain/entities"
	"github.com/reglet-dev/metamodelgen/internal/domain/values"
)

const templateV1 = `{
	"schemaVersion": "1.0.0",
	"code": "TPL",
	"name": "Template",
	"desc": "Template metamodel",
	"profileList": [],
	"useCaseProfileMap": {}
}`

const templateV2 = `{
	"schemaVersion": "2.0.0",
	"code": "TPL",
	"name": "Template",
	"desc": "Template metamodel",
	"defaultCategory": "default",
	"ancestorPathMap": {},
	"ancestorPathList": ["tpl"],
	"typeMap": {},
	"roleGroupProfileList": [],
	"roleProfileList": [],
	"useCaseProfileMap": {}
}`

const existingV1 = `{
	"schemaVersion": "1.2.0",
	"code": "UU-APP",
	"name": "Application",
	"desc": "stale",
	"version": "0.4.0",
	"stateList": [{"code": "active"}],
	"typeMap": {"dropped": true},
	"profileList": [
		{"code": "Authorities", "name": "Authorities", "desc": "Authorities", "custom": 1},
		{"code": "Executives", "name": "Executives", "desc": "Executives"},
		{"code": "Auditors", "name": "Auditors", "desc": "Auditors"},
		{"code": "Readers", "name": "Readers", "desc": "Readers"}
	],
	"defaultPermissionMatrix": {"Readers": "r"},
	"useCaseProfileMap": {"UU-APP/item/old": "10000000-00000000-00000000-00000000"}
}`

const existingV2 = `{
	"schemaVersion": "2.1.0",
	"code": "UU-APP",
	"name": "Application",
	"desc": "stale",
	"defaultCategory": 7,
	"typeMap": {"kept": true},
	"routeMap": {"item/get": {}},
	"roleGroupProfileList": [
		{"code": "Authorities"},
		{"code": "Executives"},
		{"code": "Auditors"},
		{"code": "Readers"}
	],
	"roleProfileList": [{"code": "Operator"}],
	"useCaseProfileMap": {
		"UU-APP/item/get": {
			"roleGroupProfileMaskList": ["11110000-00000000-00000000-00000000"],
			"roleProfileMaskList": ["01000000-00000000-00000000-00000000"]
		},
		"UU-APP/item/list": {
			"roleGroupProfileMaskList": ["10000000-00000000-00000000-00000000"],
			"roleProfileMaskList": null
		}
	}
}`

func decodeTemplate(t *testing.T, shape values.Shape) entities.Metamodel {
	t.Helper()
	src := templateV2
	if shape == values.ShapeV1 {
		src = templateV1
	}
	doc, err := entities.DecodeMetamodelAs([]byte(src), shape)
	require.NoError(t, err)
	return doc
}

func decodeDocument(t *testing.T, src string) entities.Metamodel {
	t.Helper()
	doc, err := entities.DecodeMetamodel([]byte(src))
	require.NoError(t, err)
	return doc
}

func sampleDefinition() entities.DomainProfiles {
	return entities.DomainProfiles{
		ProfileList: []string{"Readers", "Auditors", "Public", "Executives", "Authorities"},
		UseCaseMap: entities.UseCaseMap{
			"item/get":    {"Readers", "Public"},
			"item/create": {"Authorities", "Executives"},
			"item/list":   {"Auditors", "Readers", "AwidOwner"},
		},
	}
}

func records(codes ...string) []entities.ProfileRecord {
	out := make([]entities.ProfileRecord, len(codes))
	for i, c := range codes {
		out[i] = entities.NewProfileRecord(c)
	}
	return out
}

func marshal(t *testing.T, doc entities.Metamodel) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}
