package types

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// LooseDecimal decodes a JSON money value permissively: numbers and
// numeric strings parse normally, anything else (null, bool, objects,
// garbage strings) coerces to zero instead of failing the request.
// Presence is tracked separately so callers can still reject a field
// that was absent entirely.
type LooseDecimal struct {
	Value decimal.Decimal
	Set   bool
}

func (d *LooseDecimal) UnmarshalJSON(data []byte) error {
	d.Set = true
	d.Value = decimal.Zero

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	text := string(raw)
	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) && len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	parsed, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	d.Value = parsed
	return nil
}

func (d LooseDecimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Value.String()), nil
}
