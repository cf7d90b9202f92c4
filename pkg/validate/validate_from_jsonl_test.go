package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

func TestValidateJSONL_Mixed(t *testing.T) {
	input := strings.Join([]string{
		`[{"id":1,"title":"A","price":"10.5","image":"","amount":1}]`,
		`[{"id":2,"title":"B","price":"1","image":"","amount":0}]`, // amount < 1
		"   ",
		`[{"id":3,"title":"C","price":"7","image":"","amount":2},{"id":4,"title":"D","price":"1","image":"","amount":1}]`,
		`{not json`,
	}, "\n")

	var out bytes.Buffer
	rep, err := ValidateJSONL(context.Background(), NewCartValidator(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Valid != 2 || len(rep.Rejected) != 2 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.Rejected[0].Line != 2 || rep.Rejected[1].Line != 5 {
		t.Fatalf("rejected lines: got %d and %d, want 2 and 5", rep.Rejected[0].Line, rep.Rejected[1].Line)
	}
	if !strings.HasPrefix(rep.Rejected[0].Error(), "line 2: ") {
		t.Fatalf("line error text: %q", rep.Rejected[0].Error())
	}

	var carts []domain.Cart
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var c domain.Cart
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			t.Fatalf("output is not a cart: %v", err)
		}
		carts = append(carts, c)
	}
	if len(carts) != 2 || carts[0][0].ID != 1 || carts[1][1].ID != 4 {
		t.Fatalf("unexpected output: %+v", carts)
	}
}

// Строки длиннее буфера bufio читаются целиком.
func TestValidateJSONL_LongLine(t *testing.T) {
	line := `[{"id":9,"title":"` + strings.Repeat("X", 200_000) + `","price":"1","image":"","amount":1}]`

	var out bytes.Buffer
	rep, err := ValidateJSONL(context.Background(), NewCartValidator(), strings.NewReader(line+"\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.String() != "1 valid / 0 invalid" {
		t.Fatalf("unexpected report: %s", rep)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestValidateJSONL_WriteError(t *testing.T) {
	line := `[{"id":1,"title":"A","price":"1","image":"","amount":1}]`

	_, err := ValidateJSONL(context.Background(), NewCartValidator(), strings.NewReader(line), failingWriter{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestValidateJSONL_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ValidateJSONL(ctx, NewCartValidator(), strings.NewReader("[]\n"), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
