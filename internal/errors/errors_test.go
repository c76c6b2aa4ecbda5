package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "missing create",
			code:    "E001",
			wantMsg: "Node has no create function",
			wantCat: CategoryReconcile,
		},
		{
			name:    "type mismatch",
			code:    "E003",
			wantMsg: "View type mismatch",
			wantCat: CategoryReconcile,
		},
		{
			name:    "config error",
			code:    "E122",
			wantMsg: "Invalid configuration value",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "rows.txt")
	if err.Message != `file "rows.txt" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	if got, want := New("E004").Error(), "E004: Reconciliation pass already in progress"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &Error{Message: "plain"}
	if plain.Error() != "plain" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "plain")
	}

	wrapped := New("E120").Wrap(fmt.Errorf("disk on fire"))
	if !strings.HasSuffix(wrapped.Error(), ": disk on fire") {
		t.Errorf("Error() = %q, want wrapped cause suffix", wrapped.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New("E160").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E141")
	if got := FromError(fmt.Errorf("ctx: %w", orig), "E120"); got != orig {
		t.Error("FromError should return the existing *Error from the chain")
	}

	got := FromError(fmt.Errorf("raw"), "E120")
	if got.Code != "E120" || got.Wrapped == nil {
		t.Errorf("FromError = %+v, want E120 wrapping the cause", got)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("loading: %w", New("E141"))
	if !HasCode(err, "E141") {
		t.Error("HasCode(E141) = false, want true")
	}
	if HasCode(err, "E120") {
		t.Error("HasCode(E120) = true, want false")
	}
	if HasCode(fmt.Errorf("x"), "E141") {
		t.Error("HasCode on plain error = true, want false")
	}
}

func TestFatal(t *testing.T) {
	defer func() {
		e := AsFatal(recover())
		if e == nil {
			t.Fatal("Fatal did not panic with *Error")
		}
		if e.Code != "E003" {
			t.Errorf("Code = %q, want E003", e.Code)
		}
		if e.Detail != "node Row expected *view.Stack, got *view.Label" {
			t.Errorf("Detail = %q", e.Detail)
		}
	}()
	Fatal("E003", "node %s expected %s, got %s", "Row", "*view.Stack", "*view.Label")
}

func TestAsFatal(t *testing.T) {
	if AsFatal(nil) != nil {
		t.Error("AsFatal(nil) should be nil")
	}
	if AsFatal("not ours") != nil {
		t.Error("AsFatal(string) should be nil")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E122").
		WithDetail("diff.maxRows must not be negative").
		WithSuggestion("Use 0 to disable the reload fallback").
		Wrap(fmt.Errorf("got -1"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E122: Invalid configuration value",
		"diff.maxRows must not be negative",
		"Caused by: got -1",
		"Hint: Use 0 to disable the reload fallback",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E005").WithDetail("Row#1")
	if got, want := err.FormatCompact(), "E005: Node already built (Row#1)"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E161").WithSuggestion("list snapshots first")
	var decoded map[string]string
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v", jerr)
	}
	if decoded["code"] != "E161" {
		t.Errorf("code = %q, want E161", decoded["code"])
	}
	if decoded["category"] != string(CategoryArchive) {
		t.Errorf("category = %q, want %q", decoded["category"], CategoryArchive)
	}
	if decoded["suggestion"] != "list snapshots first" {
		t.Errorf("suggestion = %q", decoded["suggestion"])
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) != len(registry) {
		t.Fatalf("len = %d, want %d", len(codes), len(registry))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Errorf("codes not sorted: %q before %q", codes[i-1], codes[i])
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E900", ErrorTemplate{Category: CategoryCLI, Message: "custom"})
	defer delete(registry, "E900")

	tmpl, ok := GetTemplate("E900")
	if !ok || tmpl.Message != "custom" {
		t.Errorf("GetTemplate(E900) = %+v, %v", tmpl, ok)
	}
	if New("E900").Category != CategoryCLI {
		t.Error("New should use the registered template")
	}
}

func TestWrapText(t *testing.T) {
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if got := strings.Join(lines, " "); got != "one two three four five six" {
		t.Errorf("rejoined = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError(plain) = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, New("E001"))
	if !strings.Contains(buf.String(), "E001: Node has no create function") {
		t.Errorf("PrintError(*Error) = %q", buf.String())
	}
}
