package site

import "strings"

// Manufacturer IDs as used by the MakerNo filter parameter. Hand-maintained.
var defaultBrandIDs = map[string]string{
	"ASUS":            "3",
	"MSI":             "24",
	"GIGABYTE":        "11",
	"ASRock":          "1208",
	"이엠텍":             "1018",
	"갤럭시":             "1447",
	"ZOTAC":           "1164",
	"PALIT":           "1403",
	"INNO3D":          "1307",
	"에즈윈":             "1240",
	"삼성전자":            "1",
	"LG전자":            "2",
	"SK하이닉스":          "1543",
	"마이크론":            "1150",
	"Crucial":         "1151",
	"Kingston":        "81",
	"Western Digital": "85",
	"Seagate":         "82",
	"CORSAIR":         "1107",
	"마이크로닉스":          "1021",
	"SEASONIC":        "1153",
	"쿨러마스터":           "1048",
	"써멀테이크":           "1045",
	"Intel":           "5",
	"AMD":             "6",
	"NVIDIA":          "1405",
	"타무즈":             "1312",
}

// BrandTable maps manufacturer display names to filter IDs and back.
// Lookups by name are case-insensitive.
type BrandTable struct {
	byName map[string]string
	byID   map[string]string
}

func NewBrandTable(ids map[string]string) BrandTable {
	t := BrandTable{
		byName: make(map[string]string, len(ids)),
		byID:   make(map[string]string, len(ids)),
	}
	for name, id := range ids {
		t.byName[strings.ToUpper(name)] = id
		t.byID[id] = name
	}
	return t
}

// Code returns the manufacturer ID for a display name.
func (t BrandTable) Code(name string) (string, bool) {
	id, ok := t.byName[strings.ToUpper(strings.TrimSpace(name))]
	return id, ok
}

// Name returns the display name registered for a manufacturer ID.
func (t BrandTable) Name(id string) (string, bool) {
	name, ok := t.byID[strings.TrimSpace(id)]
	return name, ok
}

func (t BrandTable) Len() int {
	return len(t.byName)
}
