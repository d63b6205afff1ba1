package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/nanotodo/nanotodo/query"
	"github.com/arthur-debert/nanotodo/nanotodo/testutil"
	"github.com/arthur-debert/nanotodo/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"
)

func sampleState() types.State {
	state := testutil.StateWith(
		testutil.NewTodo("1", "Buy milk", testutil.WithDue("2024-02-01"), testutil.WithCategory("Home"), testutil.WithTags("shop")),
		testutil.NewTodo("2", "Ship release", testutil.WithPriority(types.PriorityHigh), testutil.CreatedOn(2)),
		testutil.NewTodo("3", "Old chore", testutil.Completed(), testutil.WithDescription("done already")),
	)
	state.Categories = []types.Category{{ID: "c1", Name: "Home", Color: "#00ff00"}}
	return state
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestWriteYAMLFieldNames(t *testing.T) {
	doc := FromState(sampleState(), testutil.Epoch)

	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, key := range []string{"exportedAt:", "dueDate:", "showCompleted: true", "sortBy: createdAt", "createdAt:", "updatedAt:", "color:"} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %q in output:\n%s", key, out)
		}
	}

	var decoded Document
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if diff := cmp.Diff(doc, decoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	doc := FromState(sampleState(), testutil.Epoch)

	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"exportedAt", "view", "todos", "categories", "filter"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}

	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if diff := cmp.Diff(doc, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromView(t *testing.T) {
	state := sampleState()
	state.Filter.ShowCompleted = false

	doc := FromView(state, query.Visible(state), testutil.Epoch)

	if !doc.View {
		t.Error("expected view flag")
	}
	testutil.AssertOrder(t, doc.Todos, "2", "1")
	if len(doc.Categories) != 1 {
		t.Errorf("expected categories to be carried, got %d", len(doc.Categories))
	}
}

func TestFromStateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, FromState(types.State{}, testutil.Epoch)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"todos": []`) {
		t.Errorf("expected empty todo list, got:\n%s", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("csv"), Document{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(FormatYAML, testutil.Epoch); got != "nanotodo-20240101-090000.yaml" {
		t.Errorf("unexpected filename %q", got)
	}
}
