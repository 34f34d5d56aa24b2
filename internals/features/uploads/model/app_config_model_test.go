package model

import (
	"reflect"
	"testing"

	"github.com/lib/pq"
)

func TestAppConfigAsInt(t *testing.T) {
	cases := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{"plain", "5242880", 0, 5242880},
		{"padded", " 10 ", 0, 10},
		{"garbage falls back", "5MB", 7, 7},
		{"empty falls back", "", 3, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := AppConfigModel{Value: tc.value}
			if got := cfg.AsInt(tc.def); got != tc.want {
				t.Errorf("AsInt(%q) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestAppConfigAsStringList(t *testing.T) {
	cases := []struct {
		name      string
		value     string
		valueType string
		want      []string
	}{
		{"json array", `["jpg","png"]`, "json", []string{"jpg", "png"}},
		{"csv", "jpg, png ,pdf", "string", []string{"jpg", "png", "pdf"}},
		{"csv with empties", "jpg,,png,", "string", []string{"jpg", "png"}},
		{"bad json falls back to csv", "jpg,png", "json", []string{"jpg", "png"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := AppConfigModel{Value: tc.value, ValueType: tc.valueType}
			if got := cfg.AsStringList(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("AsStringList(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestAppConfigValueListWinsOverValue(t *testing.T) {
	cfg := AppConfigModel{
		Value:     "jpg,png",
		ValueList: pq.StringArray{"jpg", "jpeg", "webp"},
		ValueType: "list",
	}
	want := []string{"jpg", "jpeg", "webp"}
	if got := cfg.AsStringList(); !reflect.DeepEqual(got, want) {
		t.Errorf("AsStringList with value_list = %v, want %v", got, want)
	}

	empty := AppConfigModel{Value: "jpg,png", ValueList: pq.StringArray{}}
	if got := empty.AsStringList(); !reflect.DeepEqual(got, []string{"jpg", "png"}) {
		t.Errorf("empty value_list should fall back to value, got %v", got)
	}
}
