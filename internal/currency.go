package internal

import (
	"bytes"
	"fmt"
	"strings"
)

type CurrencyCode string

func ParseCurrencyCode(s string) (CurrencyCode, error) {
	ccy := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if ccy == "" {
		return "", invalidInput("currency is empty")
	}
	return ccy, nil
}

func (c CurrencyCode) String() string { return string(c) }

func (c *CurrencyCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	s := strings.Trim(string(b), "\"")
	ccy, err := ParseCurrencyCode(s)
	if err != nil {
		return err
	}
	*c = ccy
	return nil
}

type Currency struct {
	Code CurrencyCode `json:"code"`
	Name string       `json:"name"`
}

// Label is the dropdown text, e.g. "EUR - Euro".
func (c Currency) Label() string {
	if c.Name == "" || c.Name == string(c.Code) {
		return string(c.Code)
	}
	return fmt.Sprintf("%s - %s", c.Code, c.Name)
}

// LiveCurrencies is the candidate set requested from the live rate provider.
var LiveCurrencies = []Currency{
	{"DZD", "Algerian dinar"},
	{"AUD", "Australian dollar"},
	{"BWP", "Botswana pula"},
	{"BRL", "Brazilian real"},
	{"BND", "Brunei dollar"},
	{"CAD", "Canadian dollar"},
	{"CLP", "Chilean peso"},
	{"CNY", "Chinese yuan"},
	{"CZK", "Czech koruna"},
	{"DKK", "Danish krone"},
	{"EUR", "Euro"},
	{"INR", "Indian rupee"},
	{"ILS", "Israeli New Shekel"},
	{"JPY", "Japanese yen"},
	{"KRW", "Korean won"},
	{"KWD", "Kuwaiti dinar"},
	{"MYR", "Malaysian ringgit"},
	{"MUR", "Mauritian rupee"},
	{"MXN", "Mexican peso"},
	{"NZD", "New Zealand dollar"},
	{"NOK", "Norwegian krone"},
	{"OMR", "Omani rial"},
	{"PEN", "Peruvian sol"},
	{"PHP", "Philippine peso"},
	{"PLN", "Polish zloty"},
	{"QAR", "Qatari riyal"},
	{"RUB", "Russian ruble"},
	{"SAR", "Saudi Arabian riyal"},
	{"SGD", "Singapore dollar"},
	{"ZAR", "South African rand"},
	{"SEK", "Swedish krona"},
	{"CHF", "Swiss franc"},
	{"THB", "Thai baht"},
	{"TTD", "Trinidadian dollar"},
	{"AED", "U.A.E. dirham"},
	{"GBP", "U.K. pound"},
	{"USD", "U.S. dollar"},
	{"UYU", "Uruguayan peso"},
}

func LiveCurrencyCodes() []CurrencyCode {
	out := make([]CurrencyCode, len(LiveCurrencies))
	for i, c := range LiveCurrencies {
		out[i] = c.Code
	}
	return out
}

// CurrencyName returns the display name from the live catalogue, or "" if unknown.
func CurrencyName(code CurrencyCode) string {
	for _, c := range LiveCurrencies {
		if c.Code == code {
			return c.Name
		}
	}
	return ""
}
