package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func oneLineJSON(s string) string {
	var b bytes.Buffer
	_ = json.Compact(&b, []byte(s))
	return b.String()
}

func TestValidateFile_JSON_Auto_OK(t *testing.T) {
	path := writeFile(t, "cart.json", validCartJSON)

	var out bytes.Buffer
	rep, err := ValidateFile(context.Background(), NewCartValidator(), path, FormatAuto, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.String() != "1 valid / 0 invalid" {
		t.Fatalf("unexpected summary: %s", rep)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("expected non-empty output")
	}
}

func TestValidateFile_JSONL_Auto_Mixed(t *testing.T) {
	content := oneLineJSON(validCartJSON) + "\n" +
		`[{"id":1,"amount":1},{"id":1,"amount":2}]` + "\n" + // повторяющийся id
		"\n" +
		`[]` + "\n"
	path := writeFile(t, "carts.jsonl", content)

	var out bytes.Buffer
	rep, err := ValidateFile(context.Background(), NewCartValidator(), path, FormatAuto, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.String() != "2 valid / 1 invalid" {
		t.Fatalf("unexpected summary: %s", rep)
	}
	if rep.Rejected[0].Line != 2 {
		t.Fatalf("want rejected line 2, got %d", rep.Rejected[0].Line)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(lines))
	}
}

func TestValidateFile_JSON_Invalid(t *testing.T) {
	path := writeFile(t, "bad.json", `[{"id":-1,"amount":1}]`)

	var out bytes.Buffer
	rep, err := ValidateFile(context.Background(), NewCartValidator(), path, FormatJSON, &out)
	if err == nil {
		t.Fatalf("expected error for invalid cart")
	}
	if rep.String() != "0 valid / 1 invalid" {
		t.Fatalf("unexpected summary: %s", rep)
	}
	if out.Len() != 0 {
		t.Fatalf("output must be empty for invalid single JSON")
	}
}

func TestValidateFile_ExplicitFormat_IgnoresExt(t *testing.T) {
	path := writeFile(t, "data.txt", oneLineJSON(validCartJSON)+"\n")

	var out bytes.Buffer
	rep, err := ValidateFile(context.Background(), NewCartValidator(), path, FormatJSONL, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.String() != "1 valid / 0 invalid" {
		t.Fatalf("unexpected summary: %s", rep)
	}
}

func TestValidateFile_OpenError(t *testing.T) {
	var out bytes.Buffer
	if _, err := ValidateFile(context.Background(), NewCartValidator(), "no-such-file.json", FormatAuto, &out); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestValidateFile_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "cart.json", validCartJSON)

	var out bytes.Buffer
	_, err := ValidateFile(context.Background(), NewCartValidator(), path, InputFormat("yaml"), &out)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got: %v", err)
	}
}
