// Package formbody decodes application/x-www-form-urlencoded request bodies
// into a flat field-to-value mapping.
package formbody

import (
	"fmt"
	"net/url"
	"strings"
)

// Form maps a field name to its decoded value. Absent fields read as "".
type Form map[string]string

// Parse splits the raw body on '&', each segment on the first '=', and
// percent-decodes the value. A field without '=' decodes to "". Malformed
// percent-encoding anywhere fails the whole decode; callers should answer
// with a client error.
func Parse(body string) (Form, error) {
	const op = "formbody.Parse"

	form := make(Form)
	if body == "" {
		return form, nil
	}
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		key, raw, _ := strings.Cut(pair, "=")
		value, err := url.QueryUnescape(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: field %q: %w", op, key, err)
		}
		form[key] = value
	}
	return form, nil
}

// Get returns the decoded value for key, or "" when the field is absent.
func (f Form) Get(key string) string {
	return f[key]
}
