package ui_test

import (
	"testing"

	"github.com/tranvictor/nftmeta/ui"
)

func TestRecordingUICapturesOutput(t *testing.T) {
	u := ui.NewRecordingUI()
	u.Info("resolving %s", "Azuki")
	u.Success("#%d done", 1)
	u.Error("#%d failed: %s", 2, "not found")
	u.KeyValue([][2]string{{"Resolved", "1"}, {"Failed", "1"}})
	u.Table([]string{"Trait", "Value"}, [][]string{{"Type", "Human"}})

	if !u.HasMessage("resolving azuki") {
		t.Errorf("case-insensitive message lookup failed")
	}
	if got := u.InfoMessages(); len(got) != 1 || got[0] != "resolving Azuki" {
		t.Errorf("info messages: %v", got)
	}
	if got := u.ErrorMessages(); len(got) != 1 || got[0] != "#2 failed: not found" {
		t.Errorf("error messages: %v", got)
	}

	entries := u.Entries()
	if len(entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(entries))
	}
	if entries[3].Method != "KeyValue" || entries[3].Value != "Resolved: 1" {
		t.Errorf("keyvalue entry: %+v", entries[3])
	}
	if entries[5].Method != "Table" || entries[5].Value != "Trait\tValue" {
		t.Errorf("table header entry: %+v", entries[5])
	}
}

func TestRecordingUIScriptedInput(t *testing.T) {
	u := ui.NewRecordingUI("bayc", "y", "2")
	if got := u.Ask(nil); got != "bayc" {
		t.Errorf("ask: got %q", got)
	}
	if !u.Confirm("continue?", false) {
		t.Errorf("confirm should be true for scripted 'y'")
	}
	if got := u.Choose("pick", []string{"a", "b", "c"}); got != 1 {
		t.Errorf("choose: got %d, want index 1", got)
	}
}

func TestRecordingUIIndentSharesState(t *testing.T) {
	u := ui.NewRecordingUI("nested")
	child := u.Indent()
	if got := child.Ask(nil); got != "nested" {
		t.Errorf("child ask: got %q", got)
	}
	if len(u.Entries()) != 1 {
		t.Errorf("parent must see the child's entries")
	}
}

func TestStyledTextMarshalsAsPlainString(t *testing.T) {
	s := ui.StyledText{Text: "0xabc", Severity: ui.SeverityError}
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"0xabc"` {
		t.Errorf("got %s", data)
	}
}
