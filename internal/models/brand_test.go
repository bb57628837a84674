package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestServicePriceAcceptsNumberOrString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Price
	}{
		{name: "string", in: `{"type":"group","price":"45"}`, want: "45"},
		{name: "integer", in: `{"type":"group","price":45}`, want: "45"},
		{name: "decimal", in: `{"type":"group","price":45.5}`, want: "45.5"},
		{name: "absent", in: `{"type":"group"}`, want: ""},
		{name: "null", in: `{"type":"group","price":null}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Service
			if err := json.Unmarshal([]byte(tt.in), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if s.Price != tt.want {
				t.Errorf("price: got %q, want %q", s.Price, tt.want)
			}
		})
	}
}

func TestServicePriceRejectsObjects(t *testing.T) {
	var s Service
	if err := json.Unmarshal([]byte(`{"price":{"amount":1}}`), &s); err == nil {
		t.Error("expected error for object price")
	}
}

func TestServiceDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		svc  Service
		want string
	}{
		{name: "label", svc: Service{Label: "1:1 Sessions", Name: "n", Type: "one-on-one"}, want: "1:1 Sessions"},
		{name: "name", svc: Service{Name: "Retreat", Type: "retreats"}, want: "Retreat"},
		{name: "type", svc: Service{Type: "online"}, want: "online"},
		{name: "generic", svc: Service{}, want: "Service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.svc.DisplayLabel(); got != tt.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrandSnapshotRoundTripKeepsUnknownKeys(t *testing.T) {
	in := `{
		"fullName": "Ada Breath",
		"colorPalette": {"primary": "#112233", "accent": "#445566"},
		"services": [{"type": "group", "label": "Group Classes", "price": 40, "duration": "60m"}],
		"credentials": ["Certified Facilitator"],
		"targetAudience": "busy founders"
	}`

	var b BrandSnapshot
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.FullName != "Ada Breath" || b.ColorPalette.Primary != "#112233" {
		t.Errorf("known fields not decoded: %+v", b)
	}
	if len(b.Services) != 1 || b.Services[0].Price != "40" {
		t.Fatalf("services: got %+v", b.Services)
	}
	if _, ok := b.Extra["credentials"]; !ok {
		t.Error("credentials should be kept in Extra")
	}

	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"targetAudience":"busy founders"`, `"duration":"60m"`, `"credentials":["Certified Facilitator"]`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestEmptyBrandSnapshotEncodesAsEmptyObject(t *testing.T) {
	out, err := json.Marshal(BrandSnapshot{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("got %s, want {}", out)
	}
}

func TestCustomizationsEncodeOnlySuppliedKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single key", `{"primaryColor":"#111111"}`, `{"primaryColor":"#111111"}`},
		{"empty string kept", `{"tagline":"","primaryColor":"#111111"}`, `{"primaryColor":"#111111","tagline":""}`},
		{"null dropped", `{"tagline":null,"variation":"bold"}`, `{"variation":"bold"}`},
		{"empty object", `{}`, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Customizations
			if err := json.Unmarshal([]byte(tt.in), &c); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			out, err := json.Marshal(c)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("got %s, want %s", out, tt.want)
			}
		})
	}
}

func TestCustomizationsLiteralOmitsEmptyFields(t *testing.T) {
	out, err := json.Marshal(Customizations{Variation: "bold"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"variation":"bold"}` {
		t.Errorf("got %s", out)
	}
}

func TestCustomizationsExplicitEmptyServices(t *testing.T) {
	var c Customizations
	if err := json.Unmarshal([]byte(`{"services":[]}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Services == nil {
		t.Fatal("explicit empty services must not decode as nil")
	}

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"services":[]}` {
		t.Errorf("got %s", out)
	}
}

func TestCustomizationsRejectWrongTypes(t *testing.T) {
	var c Customizations
	if err := json.Unmarshal([]byte(`{"tagline": 42}`), &c); err == nil {
		t.Error("expected error for numeric tagline")
	}
	if err := json.Unmarshal([]byte(`["not", "an", "object"]`), &c); err == nil {
		t.Error("expected error for array customizations")
	}
}
