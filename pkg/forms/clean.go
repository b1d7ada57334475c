package forms

import (
	"math"
	"mime/multipart"
	"net/netip"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Error codes carried by ValidationError.
const (
	CodeRequired      = "required"
	CodeInvalid       = "invalid"
	CodeInvalidChoice = "invalid_choice"
	CodeInvalidList   = "invalid_list"
	CodeMaxLength     = "max_length"
	CodeMinLength     = "min_length"
	CodeMinValue      = "min_value"
	CodeMaxValue      = "max_value"
	CodeMaxDigits     = "max_digits"
	CodeMaxDecimals   = "max_decimal_places"
	CodeMaxWhole      = "max_whole_digits"
	CodeMissing       = "missing"
	CodeEmpty         = "empty"
	CodeContradiction = "contradiction"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. %s is not one of the available choices."
	msgInvalidModel  = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidList   = "Enter a list of values."
)

var (
	dateInputLayouts     = []string{DateLayout, "01/02/2006", "01/02/06", "Jan 2 2006", "Jan 2, 2006", "2 Jan 2006", "2 Jan, 2006"}
	timeInputLayouts     = []string{TimeLayout, "15:04:05.999999", "15:04"}
	dateTimeInputLayouts = []string{
		DateTimeLayout,
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		time.RFC3339,
		time.RFC3339Nano,
		"01/02/2006 15:04:05",
		"01/02/2006 15:04",
		"01/02/06 15:04:05",
		"01/02/06 15:04",
	}

	integerTrail = regexp.MustCompile(`\.0*\s*$`)
	decimalRe    = regexp.MustCompile(`^[+-]?(\d*)(?:\.(\d*))?$`)
	slugRe       = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	emailUserRe  = regexp.MustCompile("(?i)^[-!#$%&'*+/=?^_`{}|~0-9a-z]+(\\.[-!#$%&'*+/=?^_`{}|~0-9a-z]+)*$")
	hostLabelRe  = regexp.MustCompile(`(?i)^[a-z0-9\x{00a1}-\x{ffff}](?:[a-z0-9\x{00a1}-\x{ffff}-]{0,61}[a-z0-9\x{00a1}-\x{ffff}])?$`)
	tldRe        = regexp.MustCompile(`(?i)^(?:[a-z\x{00a1}-\x{ffff}-]{2,63}|xn--[a-z0-9]{1,59})$`)
	urlSchemes   = []string{"http", "https", "ftp", "ftps"}
)

// Clean validates raw and converts it to the field's Go value.
func (f *Field) Clean(raw any) (any, error) {
	return f.CleanWithInitial(raw, f.Initial)
}

// CleanWithInitial is Clean for fields whose result can fall back to a
// previously stored value, such as file uploads.
func (f *Field) CleanWithInitial(raw, initial any) (any, error) {
	switch f.Type {
	case TypeFile:
		return f.cleanFile(raw, initial)
	case TypeSplitDateTime:
		return f.cleanSplitDateTime(raw)
	case TypeBoolean:
		value := toBool(raw)
		if !value && f.Required {
			return nil, required()
		}
		return value, nil
	case TypeNullBoolean:
		return toNullBool(raw), nil
	case TypeMultipleChoice, TypeModelMultipleChoice:
		return f.cleanMultiple(raw)
	}

	text, err := scalarText(raw)
	if err != nil {
		return nil, err
	}
	if f.Type != TypeText && f.Type != TypePassword {
		text = strings.TrimSpace(text)
	}
	if text == "" {
		if f.Required {
			return nil, required()
		}
		return emptyValue(f.Type), nil
	}

	switch f.Type {
	case TypeInteger:
		return f.cleanInteger(text)
	case TypeFloat:
		return f.cleanFloat(text)
	case TypeDecimal:
		return f.cleanDecimal(text)
	case TypeDate:
		return parseWith(text, dateInputLayouts, "Enter a valid date.")
	case TypeTime:
		return parseWith(text, timeInputLayouts, "Enter a valid time.")
	case TypeDateTime:
		return parseWith(text, append(slices.Clone(dateTimeInputLayouts), dateInputLayouts...), "Enter a valid date/time.")
	case TypeChoice, TypeTypedChoice, TypeFilePath:
		if !f.validChoice(text) {
			return nil, invalidChoice(text)
		}
		return text, nil
	case TypeModelChoice:
		if !f.validChoice(text) {
			return nil, NewValidationError(CodeInvalidChoice, msgInvalidModel)
		}
		return text, nil
	case TypeEmail:
		if err := f.checkLength(text); err != nil {
			return nil, err
		}
		if !ValidEmail(text) {
			return nil, NewValidationError(CodeInvalid, "Enter a valid email address.")
		}
		return text, nil
	case TypeURL:
		normalized := NormalizeURL(text)
		if err := f.checkLength(normalized); err != nil {
			return nil, err
		}
		if !ValidURL(normalized) {
			return nil, NewValidationError(CodeInvalid, "Enter a valid URL.")
		}
		return normalized, nil
	case TypeSlug:
		if err := f.checkLength(text); err != nil {
			return nil, err
		}
		if !slugRe.MatchString(text) {
			return nil, NewValidationError(CodeInvalid, "Enter a valid “slug” consisting of letters, numbers, underscores or hyphens.")
		}
		return text, nil
	case TypeGenericIPAddress:
		addr, err := netip.ParseAddr(text)
		if err != nil || addr.Zone() != "" {
			return nil, NewValidationError(CodeInvalid, "Enter a valid IPv4 or IPv6 address.")
		}
		return addr.Unmap().String(), nil
	default:
		if err := f.checkLength(text); err != nil {
			return nil, err
		}
		return text, nil
	}
}

func (f *Field) checkLength(text string) error {
	length := utf8.RuneCountInString(text)
	if f.MaxLength > 0 && length > f.MaxLength {
		return NewValidationError(CodeMaxLength,
			"Ensure this value has at most %d %s (it has %d).", f.MaxLength, plural(f.MaxLength, "character"), length)
	}
	if f.MinLength > 0 && length < f.MinLength {
		return NewValidationError(CodeMinLength,
			"Ensure this value has at least %d %s (it has %d).", f.MinLength, plural(f.MinLength, "character"), length)
	}
	return nil
}

func (f *Field) checkRange(value float64) error {
	if f.MinValue != nil && value < *f.MinValue {
		return NewValidationError(CodeMinValue, "Ensure this value is greater than or equal to %s.", formatNumber(*f.MinValue))
	}
	if f.MaxValue != nil && value > *f.MaxValue {
		return NewValidationError(CodeMaxValue, "Ensure this value is less than or equal to %s.", formatNumber(*f.MaxValue))
	}
	return nil
}

func (f *Field) cleanInteger(text string) (any, error) {
	n, err := strconv.ParseInt(integerTrail.ReplaceAllString(text, ""), 10, 64)
	if err != nil {
		return nil, NewValidationError(CodeInvalid, "Enter a whole number.")
	}
	if err := f.checkRange(float64(n)); err != nil {
		return nil, err
	}
	return n, nil
}

func (f *Field) cleanFloat(text string) (any, error) {
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return nil, NewValidationError(CodeInvalid, "Enter a number.")
	}
	if err := f.checkRange(n); err != nil {
		return nil, err
	}
	return n, nil
}

// cleanDecimal keeps decimals as canonical strings so no precision is lost.
func (f *Field) cleanDecimal(text string) (any, error) {
	match := decimalRe.FindStringSubmatch(text)
	if match == nil || (match[1] == "" && match[2] == "") {
		return nil, NewValidationError(CodeInvalid, "Enter a number.")
	}
	whole, frac := match[1], match[2]

	significant := strings.TrimLeft(whole+frac, "0")
	digits, decimals := len(significant), len(frac)
	if significant == "" {
		digits = 1
	}
	if decimals > digits {
		digits = decimals
	}
	wholeDigits := digits - decimals

	if f.MaxDigits > 0 && digits > f.MaxDigits {
		return nil, NewValidationError(CodeMaxDigits,
			"Ensure that there are no more than %d %s in total.", f.MaxDigits, plural(f.MaxDigits, "digit"))
	}
	if f.DecimalPlaces > 0 && decimals > f.DecimalPlaces {
		return nil, NewValidationError(CodeMaxDecimals,
			"Ensure that there are no more than %d decimal %s.", f.DecimalPlaces, plural(f.DecimalPlaces, "place"))
	}
	if f.MaxDigits > 0 && f.DecimalPlaces >= 0 && wholeDigits > f.MaxDigits-f.DecimalPlaces {
		limit := f.MaxDigits - f.DecimalPlaces
		return nil, NewValidationError(CodeMaxWhole,
			"Ensure that there are no more than %d %s before the decimal point.", limit, plural(limit, "digit"))
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, NewValidationError(CodeInvalid, "Enter a number.")
	}
	if err := f.checkRange(value); err != nil {
		return nil, err
	}

	canonical := strings.TrimLeft(whole, "0")
	if canonical == "" {
		canonical = "0"
	}
	if strings.HasPrefix(text, "-") {
		canonical = "-" + canonical
	}
	if frac != "" {
		canonical += "." + frac
	}
	return canonical, nil
}

func (f *Field) cleanMultiple(raw any) (any, error) {
	var values []string
	switch v := raw.(type) {
	case nil:
	case []string:
		values = slices.Clone(v)
	case []any:
		for _, item := range v {
			values = append(values, formatScalar(item, ""))
		}
	case string:
		if v != "" {
			values = []string{v}
		}
	default:
		return nil, NewValidationError(CodeInvalidList, msgInvalidList)
	}
	if len(values) == 0 {
		if f.Required {
			return nil, required()
		}
		return []string{}, nil
	}
	for _, value := range values {
		if !f.validChoice(value) {
			return nil, invalidChoice(value)
		}
	}
	return values, nil
}

func (f *Field) cleanFile(raw, initial any) (any, error) {
	switch v := raw.(type) {
	case bool:
		// false comes from a ticked clear checkbox.
		if !v && !f.Required {
			return false, nil
		}
		raw = nil
	case *multipart.FileHeader:
		if v == nil {
			raw = nil
		}
	}

	if raw == nil {
		if initial != nil && formatScalar(initial, "") != "" {
			return initial, nil
		}
		if f.Required {
			return nil, required()
		}
		return nil, nil
	}

	switch v := raw.(type) {
	case *multipart.FileHeader:
		if v.Filename == "" {
			return nil, NewValidationError(CodeInvalid, "No file was submitted. Check the encoding type on the form.")
		}
		if length := utf8.RuneCountInString(v.Filename); f.MaxLength > 0 && length > f.MaxLength {
			return nil, NewValidationError(CodeMaxLength,
				"Ensure this filename has at most %d %s (it has %d).", f.MaxLength, plural(f.MaxLength, "character"), length)
		}
		if v.Size == 0 {
			return nil, NewValidationError(CodeEmpty, "The submitted file is empty.")
		}
		return v, nil
	case []*multipart.FileHeader:
		for _, header := range v {
			if _, err := f.cleanFile(header, nil); err != nil {
				return nil, err
			}
		}
		return v, nil
	default:
		return nil, NewValidationError(CodeMissing, "No file was submitted. Check the encoding type on the form.")
	}
}

func (f *Field) cleanSplitDateTime(raw any) (any, error) {
	var parts []string
	switch v := raw.(type) {
	case nil:
	case []any:
		for _, item := range v {
			parts = append(parts, strings.TrimSpace(formatScalar(item, "")))
		}
	case []string:
		for _, item := range v {
			parts = append(parts, strings.TrimSpace(item))
		}
	case time.Time:
		return v, nil
	default:
		return nil, NewValidationError(CodeInvalid, msgInvalidList)
	}

	empty := true
	for _, part := range parts {
		if part != "" {
			empty = false
		}
	}
	if empty {
		if f.Required {
			return nil, required()
		}
		return nil, nil
	}
	if len(parts) != 2 {
		return nil, NewValidationError(CodeInvalid, msgInvalidList)
	}
	if parts[0] == "" {
		return nil, NewValidationError("invalid_date", "Enter a valid date.")
	}
	if parts[1] == "" {
		return nil, NewValidationError("invalid_time", "Enter a valid time.")
	}
	date, err := parseWith(parts[0], dateInputLayouts, "Enter a valid date.")
	if err != nil {
		return nil, err
	}
	clock, err := parseWith(parts[1], timeInputLayouts, "Enter a valid time.")
	if err != nil {
		return nil, err
	}
	d, c := date.(time.Time), clock.(time.Time)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), nil
}

func (f *Field) validChoice(value string) bool {
	for _, choice := range f.LeafChoices() {
		if choice.Value == value {
			return true
		}
	}
	return false
}

// NormalizeURL prepends http:// to scheme-less input and moves a bare host
// out of the path, the way browsers read typed addresses.
func NormalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "http"
	}
	if parsed.Host == "" && parsed.Opaque == "" && parsed.Path != "" {
		host, path, _ := strings.Cut(parsed.Path, "/")
		parsed.Host = host
		parsed.Path = ""
		if path != "" {
			parsed.Path = "/" + path
		}
	}
	return parsed.String()
}

// ValidURL accepts http, https, ftp and ftps URLs whose host is localhost, an
// IP address or a domain with a top level label.
func ValidURL(raw string) bool {
	if strings.ContainsAny(raw, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Opaque != "" {
		return false
	}
	if !slices.Contains(urlSchemes, strings.ToLower(parsed.Scheme)) {
		return false
	}
	if port := parsed.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
			return false
		}
	}
	host := parsed.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return true
	}
	return validDomain(host, true)
}

// ValidEmail accepts user@domain addresses with a dotted domain, an IP literal
// or localhost.
func ValidEmail(raw string) bool {
	user, domain, ok := strings.Cut(raw, "@")
	if !ok || strings.Contains(domain, "@") || user == "" || domain == "" {
		return false
	}
	if !emailUserRe.MatchString(user) {
		return false
	}
	if strings.EqualFold(domain, "localhost") {
		return true
	}
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		literal := strings.TrimPrefix(strings.Trim(domain, "[]"), "IPv6:")
		_, err := netip.ParseAddr(literal)
		return err == nil
	}
	return validDomain(domain, true)
}

func validDomain(host string, needTLD bool) bool {
	host = strings.TrimSuffix(host, ".")
	if host == "" || len(host) > 253 {
		return false
	}
	labels := strings.Split(host, ".")
	if needTLD && len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !hostLabelRe.MatchString(label) {
			return false
		}
	}
	return tldRe.MatchString(labels[len(labels)-1])
}

// parseDateTime reads a submitted date time using the accepted layouts.
func parseDateTime(raw string) (time.Time, bool) {
	value, err := parseWith(strings.TrimSpace(raw), append(slices.Clone(dateTimeInputLayouts), dateInputLayouts...), "")
	if err != nil {
		return time.Time{}, false
	}
	return value.(time.Time), true
}

func parseWith(text string, layouts []string, message string) (any, error) {
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return nil, NewValidationError(CodeInvalid, message)
}

func scalarText(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []string:
		if len(v) == 0 {
			return "", nil
		}
		return v[0], nil
	case []any:
		return "", NewValidationError(CodeInvalid, "Enter a valid value.")
	default:
		return formatScalar(v, ""), nil
	}
}

func emptyValue(ft FieldType) any {
	switch ft {
	case TypeInteger, TypeFloat, TypeDecimal, TypeDate, TypeDateTime, TypeTime, TypeModelChoice:
		return nil
	default:
		return ""
	}
}

func toBool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "0", "off":
			return false
		}
		return true
	default:
		return true
	}
}

func toNullBool(raw any) any {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "2", "on", "yes":
			return true
		case "false", "3", "0", "no":
			return false
		}
	}
	return nil
}

func required() *ValidationError {
	return NewValidationError(CodeRequired, msgRequired)
}

func invalidChoice(value string) *ValidationError {
	return NewValidationError(CodeInvalidChoice, msgInvalidChoice, value)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
