package currency

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/clarity-clinic/clarity/internal/shared"
)

const settingKey = "clinic:currency"

// DefaultCode is the currency assumed before anyone picks one.
const DefaultCode = "INR"

// Currency describes one selectable display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Locale string `json:"locale"`
}

// Supported is the fixed set of selectable currencies.
var Supported = []Currency{
	{Code: "INR", Symbol: "₹", Locale: "en-IN"},
	{Code: "USD", Symbol: "$", Locale: "en-US"},
	{Code: "EUR", Symbol: "€", Locale: "de-DE"},
	{Code: "GBP", Symbol: "£", Locale: "en-GB"},
}

// Lookup returns the currency for a code.
func Lookup(code string) (Currency, bool) {
	for _, c := range Supported {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Settings stores the single global currency preference in Redis.
type Settings struct {
	client *redis.Client
}

// NewSettings constructs the preference store.
func NewSettings(client *redis.Client) *Settings {
	return &Settings{client: client}
}

// Current returns the active currency, falling back to the default when
// nothing has been selected or Redis is unavailable.
func (s *Settings) Current(ctx context.Context) Currency {
	fallback, _ := Lookup(DefaultCode)
	if s == nil || s.client == nil {
		return fallback
	}
	code, err := s.client.Get(ctx, settingKey).Result()
	if err != nil {
		return fallback
	}
	if c, ok := Lookup(code); ok {
		return c
	}
	return fallback
}

// Set records a new active currency. Unknown codes are rejected.
func (s *Settings) Set(ctx context.Context, code string) (Currency, error) {
	c, ok := Lookup(code)
	if !ok {
		return Currency{}, fmt.Errorf("%w: unsupported currency %q", shared.ErrValidation, code)
	}
	if err := s.client.Set(ctx, settingKey, c.Code, 0).Err(); err != nil {
		return Currency{}, fmt.Errorf("currency: set: %w", err)
	}
	return c, nil
}

// Formatter renders amounts with the locale conventions of a currency.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for the given currency.
func NewFormatter(c Currency) *Formatter {
	return &Formatter{
		symbol:  c.Symbol,
		printer: message.NewPrinter(language.MustParse(c.Locale)),
	}
}

// Format renders an amount with the currency symbol and two fraction
// digits, grouped per the currency's locale.
func (f *Formatter) Format(v float64) string {
	return f.symbol + f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
