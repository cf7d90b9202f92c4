package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// LineError — отклонённая строка входа (нумерация с 1).
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e LineError) Unwrap() error { return e.Err }

// Report — итог проверки: сколько снимков прошло и какие строки отклонены.
type Report struct {
	Valid    int
	Rejected []LineError
}

func (r Report) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, len(r.Rejected))
}

// ValidateJSONL — снимок корзины на строку. Валидные уходят в ow компактным JSON,
// невалидные попадают в Report.Rejected. Пустые строки пропускаются,
// длина строки не ограничена.
func ValidateJSONL(ctx context.Context, validator ports.CartValidator, ir io.Reader, ow io.Writer) (Report, error) {
	var rep Report

	in := bufio.NewReader(ir)
	out := bufio.NewWriter(ow)

	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		line, readErr := in.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return rep, fmt.Errorf("read line %d: %w", lineNo, readErr)
		}

		if line = bytes.TrimSpace(line); len(line) > 0 {
			cart, err := CartFromJSON(ctx, validator, line)
			if err != nil {
				rep.Rejected = append(rep.Rejected, LineError{Line: lineNo, Err: err})
			} else {
				canonical, _ := json.Marshal(cart)
				if _, err := out.Write(append(canonical, '\n')); err != nil {
					return rep, fmt.Errorf("write valid snapshot: %w", err)
				}
				rep.Valid++
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
	}

	if err := out.Flush(); err != nil {
		return rep, fmt.Errorf("write valid snapshot: %w", err)
	}
	return rep, nil
}
