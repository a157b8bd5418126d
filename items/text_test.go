package items

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestYAMLRoundTrip(t *testing.T) {
	tbl := sampleTable(t)
	out, err := yaml.Marshal(tbl)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"mode: grandprix", "condition: lap2to5-5th-8th", "display: no-ghosts-or-feathers", "mode: battle"} {
		if !bytes.Contains(out, []byte(s)) {
			t.Errorf("YAML output has no %q", s)
		}
	}

	var got Table
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), tbl.Bytes()) {
		t.Fatalf("YAML round trip changed the table")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	tbl := sampleTable(t)
	out, err := tbl.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte(`"mode":"matchrace","set":6,"condition":"lap2to5-2nd"`)) {
		t.Errorf("unexpected JSON output: %s", out)
	}

	var got Table
	if err := got.UnmarshalJSON(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), tbl.Bytes()) {
		t.Fatalf("JSON round trip changed the table")
	}
}

// yamlDocument returns the YAML document of the sample table, for tests to
// alter.
func yamlDocument(t *testing.T) yamlDoc {
	t.Helper()

	v, err := sampleTable(t).MarshalYAML()
	if err != nil {
		t.Fatal(err)
	}
	return v.(yamlDoc)
}

func TestYAMLInvalid(t *testing.T) {
	tests := []struct {
		name  string
		alter func(doc *yamlDoc)
	}{
		{"missing record", func(doc *yamlDoc) { doc.Items = doc.Items[1:] }},
		{"duplicate record", func(doc *yamlDoc) { doc.Items[1] = doc.Items[0] }},
		{"too many weights", func(doc *yamlDoc) { doc.Items[5].Coins = 30 }},
		{"negative weight", func(doc *yamlDoc) { doc.Items[5].Star = -1 }},
		{"set out of range", func(doc *yamlDoc) { set := 7; doc.Items[2].Set = &set }},
		{"missing set", func(doc *yamlDoc) { doc.Items[2].Set = nil }},
		{"unknown condition", func(doc *yamlDoc) { doc.Items[2].Condition = "lap1" }},
		{"missing mode", func(doc *yamlDoc) { doc.Items[2].Mode = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := yamlDocument(t)
			tt.alter(&doc)
			out, err := yaml.Marshal(doc)
			if err != nil {
				t.Fatal(err)
			}

			tbl := sampleTable(t)
			before := tbl.Bytes()
			err = yaml.Unmarshal(out, tbl)
			if err == nil {
				t.Fatalf("Unmarshal should fail")
			}
			t.Log(err)
			if !bytes.Equal(tbl.Bytes(), before) {
				t.Fatalf("failed Unmarshal modified the table")
			}
		})
	}
}

func TestYAMLUnknownDisplayMode(t *testing.T) {
	out, err := yaml.Marshal(sampleTable(t))
	if err != nil {
		t.Fatal(err)
	}
	out = bytes.Replace(out, []byte("display: all-items"), []byte("display: no-stars"), 1)

	tbl := sampleTable(t)
	before := tbl.Bytes()
	if err := yaml.Unmarshal(out, tbl); err == nil {
		t.Fatalf("Unmarshal should fail")
	}
	if !bytes.Equal(tbl.Bytes(), before) {
		t.Fatalf("failed Unmarshal modified the table")
	}
}

func TestJSONInvalid(t *testing.T) {
	valid, err := sampleTable(t).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ``},
		{"not an object", `[]`},
		{"no records", `{"items":[]}`},
		{"missing mode", `{"items":[{"set":1,"condition":"lap1"}]}`},
		{"unknown item", strings.Replace(string(valid), `"mushroom"`, `"lightning2"`, 1)},
		{"unknown display", strings.Replace(string(valid), `"display":"all-items"`, `"display":"bogus"`, 1)},
		{"truncated", string(valid[:len(valid)/2])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := sampleTable(t)
			before := tbl.Bytes()
			err := tbl.UnmarshalJSON([]byte(tt.doc))
			if err == nil {
				t.Fatalf("UnmarshalJSON should fail")
			}
			t.Log(err)
			if !bytes.Equal(tbl.Bytes(), before) {
				t.Fatalf("failed UnmarshalJSON modified the table")
			}
		})
	}
}

func TestJSONIgnoresLightning(t *testing.T) {
	tbl := sampleTable(t)
	out, err := tbl.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	out = bytes.ReplaceAll(out, []byte(`"lightning":`), []byte(`"lightning":1`))

	var got Table
	if err := got.UnmarshalJSON(out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), tbl.Bytes()) {
		t.Fatalf("lightning value changed the table")
	}
}
