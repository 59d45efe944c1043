package errors

import (
	"encoding/json"
	"os"
	"path/filepath"
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
			name:    "hydration error",
			code:    "E001",
			wantMsg: "No hydration payload",
			wantCat: CategoryHydration,
		},
		{
			name:    "protocol error",
			code:    "E020",
			wantMsg: "Unclosed region marker",
			wantCat: CategoryProtocol,
		},
		{
			name:    "validation error",
			code:    "E040",
			wantMsg: "Context node id is not numeric",
			wantCat: CategoryValidation,
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
	err := Newf(CategoryCLI, "file %q not found", "page.html")
	if err.Message != `file "page.html" not found` {
		t.Errorf("Message = %q, want %q", err.Message, `file "page.html" not found`)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestEaselError_Error(t *testing.T) {
	err := New("E001")
	got := err.Error()
	want := "E001: No hydration payload"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &EaselError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestEaselError_WithLocation(t *testing.T) {
	// Create a temp file with some content
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "page.html")
	content := `<html>
<body>
<section>
  <!--av a:id=counter-->
  <p>5</p>
</section>
</body>
</html>
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E020").WithLocation(tmpFile, 4, 3)

	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.File != tmpFile {
		t.Errorf("Location.File = %q, want %q", err.Location.File, tmpFile)
	}
	if err.Location.Line != 4 {
		t.Errorf("Location.Line = %d, want %d", err.Location.Line, 4)
	}
	if err.Location.Column != 3 {
		t.Errorf("Location.Column = %d, want %d", err.Location.Column, 3)
	}
	if len(err.Context) == 0 {
		t.Error("Context should not be empty")
	}
}

func TestEaselError_WithSuggestion(t *testing.T) {
	err := New("E020").WithSuggestion("Close the region with a <!--/av--> comment")
	if err.Suggestion != "Close the region with a <!--/av--> comment" {
		t.Errorf("Suggestion = %q, want %q", err.Suggestion, "Close the region with a <!--/av--> comment")
	}
}

func TestEaselError_WithDetail(t *testing.T) {
	err := New("E001").WithDetail("Custom detail")
	if err.Detail != "Custom detail" {
		t.Errorf("Detail = %q, want %q", err.Detail, "Custom detail")
	}
}

func TestEaselError_Wrap(t *testing.T) {
	inner := New("E003")
	outer := New("E001").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
}

func TestFromError(t *testing.T) {
	// nil error
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	// Already EaselError
	ee := New("E001")
	if FromError(ee, "E002") != ee {
		t.Error("FromError should return EaselError as-is")
	}

	// Standard error
	stdErr := &testError{msg: "test error"}
	result := FromError(stdErr, "E001")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
}

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{
			name: "nil location",
			loc:  nil,
			want: "",
		},
		{
			name: "with column",
			loc:  &Location{File: "page.html", Line: 10, Column: 5},
			want: "page.html:10:5",
		},
		{
			name: "without column",
			loc:  &Location{File: "page.html", Line: 10, Column: 0},
			want: "page.html:10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.loc.String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	// Create a temp file with some content
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "page.html")
	content := `<html>
<body>
  <!--av a:id=counter-->
  <p>5</p>
</body>
</html>
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("E020").
		WithLocation(tmpFile, 3, 3).
		WithSuggestion("Close the region with a <!--/av--> comment")

	formatted := err.Format()

	// Check that key components are present
	if !strings.Contains(formatted, "E020") {
		t.Error("Format should contain error code")
	}
	if !strings.Contains(formatted, "Unclosed region marker") {
		t.Error("Format should contain error message")
	}
	if !strings.Contains(formatted, tmpFile) {
		t.Error("Format should contain file path")
	}
	if !strings.Contains(formatted, "Hint:") {
		t.Error("Format should contain hint")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E001").WithLocation("page.html", 10, 5)
	compact := err.FormatCompact()

	want := "page.html:10:5: E001: No hydration payload"
	if compact != want {
		t.Errorf("FormatCompact() = %q, want %q", compact, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E001").WithLocation("page.html", 10, 5)
	raw := err.FormatJSON()

	var decoded struct {
		Code     string `json:"code"`
		Category string `json:"category"`
		Message  string `json:"message"`
		Location *struct {
			File string `json:"file"`
			Line int    `json:"line"`
		} `json:"location"`
	}
	if uerr := json.Unmarshal([]byte(raw), &decoded); uerr != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v", uerr)
	}
	if decoded.Code != "E001" {
		t.Errorf("code = %q, want E001", decoded.Code)
	}
	if decoded.Category != "hydration" {
		t.Errorf("category = %q, want hydration", decoded.Category)
	}
	if decoded.Message != "No hydration payload" {
		t.Errorf("message = %q, want %q", decoded.Message, "No hydration payload")
	}
	if decoded.Location == nil || decoded.Location.File != "page.html" || decoded.Location.Line != 10 {
		t.Errorf("location = %+v, want page.html:10", decoded.Location)
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Error("GetAllCodes() should return codes")
	}

	// Check that E001 is in the list
	found := false
	for _, code := range codes {
		if code == "E001" {
			found = true
			break
		}
	}
	if !found {
		t.Error("E001 should be in the codes list")
	}
}

func TestGetTemplate(t *testing.T) {
	template, ok := GetTemplate("E001")
	if !ok {
		t.Error("E001 should exist")
	}
	if template.Message != "No hydration payload" {
		t.Error("Template message mismatch")
	}

	_, ok = GetTemplate("E999")
	if ok {
		t.Error("E999 should not exist")
	}
}

func TestRegister(t *testing.T) {
	Register("E999", ErrorTemplate{
		Category: CategoryCLI,
		Message:  "Custom test error",
		Detail:   "This is a test error",
	})

	err := New("E999")
	if err.Message != "Custom test error" {
		t.Errorf("Message = %q, want %q", err.Message, "Custom test error")
	}

	// Cleanup
	delete(registry, "E999")
}

func TestWrapText(t *testing.T) {
	// Test short text that doesn't need wrapping
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	// Test text that needs wrapping
	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	// Test empty string returns empty/nil
	got = wrapText("", 10)
	if len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorGate(t *testing.T) {
	// With colors enabled
	EnableColors()
	if !strings.Contains(errorLabel("test"), "\033[") {
		t.Error("label should contain ANSI codes when colors enabled")
	}

	// With colors disabled
	DisableColors()
	if strings.Contains(errorLabel("test"), "\033[") {
		t.Error("label should not contain ANSI codes when colors disabled")
	}
	EnableColors()
}
