package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ValidateFile — проверяет выгруженный снимок корзины (JSON) или набор снимков (JSONL),
// валидные пишет в ow. Для одиночного JSON невалидный снимок возвращается ещё и ошибкой.
func ValidateFile(ctx context.Context, validator ports.CartValidator, filePath string, format InputFormat, ow io.Writer) (Report, error) {
	if format == FormatAuto {
		format = formatByExt(filePath)
	}
	if format != FormatJSON && format != FormatJSONL {
		return Report{}, fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Report{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if format == FormatJSONL {
		return ValidateJSONL(ctx, validator, file, ow)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return Report{}, fmt.Errorf("read file: %w", err)
	}
	cart, err := CartFromJSON(ctx, validator, raw)
	if err != nil {
		return Report{Rejected: []LineError{{Line: 1, Err: err}}}, err
	}
	canonical, _ := json.Marshal(cart)
	if _, err := ow.Write(append(canonical, '\n')); err != nil {
		return Report{}, fmt.Errorf("write json: %w", err)
	}
	return Report{Valid: 1}, nil
}

// formatByExt — .jsonl → JSONL, всё остальное считаем JSON.
func formatByExt(path string) InputFormat {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}
