package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/majorfi/datetool/pkg/utils"
)

/**************************************************************************************************
** Field identifies one component of a timestamp that a date format can mention.
**************************************************************************************************/
type Field int

const (
	Year Field = iota
	Month
	Day
	Hour
	Minute
	Second
	Millisecond
	fieldCount
)

var fieldNames = [fieldCount]string{"year", "month", "day", "hour", "minute", "second", "millisecond"}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

/**************************************************************************************************
** FieldSet is a bitmask of fields. A compiled format knows at compile time which fields it
** mentions, so a parsed PartialDate carries exactly the fields its source actually set.
**************************************************************************************************/
type FieldSet uint8

func (s FieldSet) Has(f Field) bool {
	return s&(1<<f) != 0
}

func (s FieldSet) With(f Field) FieldSet {
	return s | 1<<f
}

func (s FieldSet) String() string {
	if s == 0 {
		return "none"
	}
	names := make([]string, 0, fieldCount)
	for f := Year; f < fieldCount; f++ {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}
	return strings.Join(names, "|")
}

/**************************************************************************************************
** PartialDate is a timestamp candidate where only the fields in Fields are meaningful. It is
** turned into a full time.Time by laying it over a base date (the explicit default date, or
** an accumulated merge).
**************************************************************************************************/
type PartialDate struct {
	Values [fieldCount]int
	Fields FieldSet
}

func (p PartialDate) IsZero() bool {
	return p.Fields == 0
}

// Get returns the value of f and whether f was set.
func (p PartialDate) Get(f Field) (int, bool) {
	return p.Values[f], p.Fields.Has(f)
}

// Set returns a copy of p with f set to v.
func (p PartialDate) Set(f Field, v int) PartialDate {
	p.Values[f] = v
	p.Fields = p.Fields.With(f)
	return p
}

/**************************************************************************************************
** Overlay returns p with every field set in q overwritten by q's value. Fields q did not set
** keep p's value (and p's set/unset state).
**
** @param q - Partial date whose set fields win
** @return PartialDate - The combined partial date
**************************************************************************************************/
func (p PartialDate) Overlay(q PartialDate) PartialDate {
	for f := Year; f < fieldCount; f++ {
		if q.Fields.Has(f) {
			p = p.Set(f, q.Values[f])
		}
	}
	return p
}

/**************************************************************************************************
** Apply lays the set fields of p over base and returns the resulting timestamp in base's
** location. Unset fields keep base's values. The result is rejected when a value is out of
** range or the combination is not a calendar date (February 30th).
**
** @param base - Timestamp providing the unset fields and the location
** @return time.Time - The combined timestamp, millisecond precision
** @return bool - False if the combination is not a valid timestamp
**************************************************************************************************/
func (p PartialDate) Apply(base time.Time) (time.Time, bool) {
	year, month, day := base.Date()
	hour, minute, second := base.Clock()
	values := [fieldCount]int{year, int(month), day, hour, minute, second, base.Nanosecond() / int(time.Millisecond)}
	for f := Year; f < fieldCount; f++ {
		if p.Fields.Has(f) {
			values[f] = p.Values[f]
		}
	}
	if !inRange(values) {
		return time.Time{}, false
	}

	t := time.Date(values[Year], time.Month(values[Month]), values[Day],
		values[Hour], values[Minute], values[Second], values[Millisecond]*int(time.Millisecond), base.Location())
	if t.Day() != values[Day] || int(t.Month()) != values[Month] {
		return time.Time{}, false
	}
	return t, true
}

func inRange(v [fieldCount]int) bool {
	return v[Year] >= 0 &&
		v[Month] >= 1 && v[Month] <= 12 &&
		v[Day] >= 1 && v[Day] <= 31 &&
		v[Hour] >= 0 && v[Hour] <= 23 &&
		v[Minute] >= 0 && v[Minute] <= 59 &&
		v[Second] >= 0 && v[Second] <= 59 &&
		v[Millisecond] >= 0 && v[Millisecond] <= 999
}

type tokenKind int

const (
	literalToken tokenKind = iota
	numberToken
	twoDigitYearToken
	monthShortToken
	monthLongToken
)

type token struct {
	kind  tokenKind
	field Field
	width int    // zero-padding on render, 0 = unpadded
	expr  string // regex for the value, without groups
	text  string // literal text
}

var tokenFields = map[rune]Field{
	'y': Year,
	'M': Month,
	'd': Day,
	'H': Hour,
	'm': Minute,
	's': Second,
	'S': Millisecond,
}

const monthShortExpr = `(?i:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`
const monthLongExpr = `(?i:january|february|march|april|may|june|july|august|september|october|november|december)`

/**************************************************************************************************
** newToken maps a run of n identical token letters to a token.
**
**   y / yy / yyy+      year unpadded, two-digit year, four-digit year
**   M / MM / MMM / MMMM  month unpadded, two digits, short name, long name
**   d H m s            unpadded 1-2 digits; doubled means exactly two digits
**   S / SSS            millisecond unpadded, three digits
**************************************************************************************************/
func newToken(r rune, n int) token {
	field := tokenFields[r]
	switch r {
	case 'y':
		switch {
		case n == 1:
			return token{kind: numberToken, field: field, expr: `\d{1,6}`}
		case n == 2:
			return token{kind: twoDigitYearToken, field: field, width: 2, expr: `\d{2}`}
		default:
			return token{kind: numberToken, field: field, width: 4, expr: `\d{4}`}
		}
	case 'M':
		switch {
		case n == 1:
			return token{kind: numberToken, field: field, expr: `\d{1,2}`}
		case n == 2:
			return token{kind: numberToken, field: field, width: 2, expr: `\d{2}`}
		case n == 3:
			return token{kind: monthShortToken, field: field, expr: monthShortExpr}
		default:
			return token{kind: monthLongToken, field: field, expr: monthLongExpr}
		}
	case 'S':
		if n == 1 {
			return token{kind: numberToken, field: field, expr: `\d{1,3}`}
		}
		return token{kind: numberToken, field: field, width: 3, expr: `\d{3}`}
	default:
		if n == 1 {
			return token{kind: numberToken, field: field, expr: `\d{1,2}`}
		}
		return token{kind: numberToken, field: field, width: 2, expr: `\d{2}`}
	}
}

func (t token) value(s string) (int, bool) {
	switch t.kind {
	case monthShortToken, monthLongToken:
		lower := strings.ToLower(s)
		for m := time.January; m <= time.December; m++ {
			name := strings.ToLower(m.String())
			if lower == name || lower == name[:3] {
				return int(m), true
			}
		}
		return 0, false
	case twoDigitYearToken:
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		if v > 60 {
			return 1900 + v, true
		}
		return 2000 + v, true
	default:
		v, err := strconv.Atoi(s)
		return v, err == nil
	}
}

func (t token) render(values [fieldCount]int) string {
	v := values[t.field]
	switch t.kind {
	case literalToken:
		return t.text
	case monthShortToken:
		return time.Month(v).String()[:3]
	case monthLongToken:
		return time.Month(v).String()
	case twoDigitYearToken:
		return fmt.Sprintf("%02d", v%100)
	default:
		return fmt.Sprintf("%0*d", t.width, v)
	}
}

/**************************************************************************************************
** DateFormat is a compiled date-format pattern. It parses a string into a PartialDate and
** renders a timestamp back into a string, and it knows which fields it mentions.
**************************************************************************************************/
type DateFormat struct {
	raw    string
	tokens []token
	fields FieldSet
	expr   string         // unanchored pattern without capture groups, for embedding
	parser *regexp.Regexp // anchored pattern with one group per field token
}

var formatCache = utils.NewLRUCache[*DateFormat](256)

/**************************************************************************************************
** CompileFormat compiles a date-format pattern. Compilation never fails: characters that are
** not token letters, and text between single quotes, are literals ('' is a literal quote).
**
** @param format - The pattern, e.g. "yyyyMMdd_HHmmss" or "yyyy'-'MM"
** @return *DateFormat - The compiled format (shared, immutable)
**************************************************************************************************/
func CompileFormat(format string) *DateFormat {
	if f, ok := formatCache.Get(format); ok {
		return f
	}

	f := &DateFormat{raw: format, tokens: tokenize(format)}
	var expr, parser strings.Builder
	for _, t := range f.tokens {
		if t.kind == literalToken {
			quoted := regexp.QuoteMeta(t.text)
			expr.WriteString(quoted)
			parser.WriteString(quoted)
			continue
		}
		f.fields = f.fields.With(t.field)
		expr.WriteString("(?:" + t.expr + ")")
		parser.WriteString("(" + t.expr + ")")
	}
	f.expr = expr.String()
	f.parser = regexp.MustCompile("^" + parser.String() + "$")

	formatCache.Put(format, f)
	return f
}

func tokenize(format string) []token {
	var tokens []token
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{kind: literalToken, text: literal.String()})
			literal.Reset()
		}
	}

	runes := []rune(format)
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '\'' {
			i++
			if i < len(runes) && runes[i] == '\'' {
				literal.WriteRune('\'')
				i++
				continue
			}
			for i < len(runes) {
				if runes[i] == '\'' {
					if i+1 < len(runes) && runes[i+1] == '\'' {
						literal.WriteRune('\'')
						i += 2
						continue
					}
					break
				}
				literal.WriteRune(runes[i])
				i++
			}
			i++ // closing quote; an unterminated quote runs to the end
			continue
		}
		if _, ok := tokenFields[r]; !ok {
			literal.WriteRune(r)
			i++
			continue
		}
		n := 1
		for i+n < len(runes) && runes[i+n] == r {
			n++
		}
		flush()
		tokens = append(tokens, newToken(r, n))
		i += n
	}
	flush()
	return tokens
}

func (f *DateFormat) String() string {
	return f.raw
}

// Fields returns the set of fields the format mentions.
func (f *DateFormat) Fields() FieldSet {
	return f.fields
}

// HasFields reports whether the format mentions at least one field. A format made only of
// literals matches text but never contributes date information.
func (f *DateFormat) HasFields() bool {
	return f.fields != 0
}

/**************************************************************************************************
** Parse matches the whole of s against the format and returns the fields it mentions. Values
** are range-checked individually; calendar validity (e.g. day 31 in a 30-day month) depends
** on the fields supplied by other sources and is checked by PartialDate.Apply.
**
** @param s - Text to parse
** @return PartialDate - Parsed fields
** @return bool - False if s does not match the format or a value is out of range
**************************************************************************************************/
func (f *DateFormat) Parse(s string) (PartialDate, bool) {
	m := f.parser.FindStringSubmatch(s)
	if m == nil {
		return PartialDate{}, false
	}

	var p PartialDate
	group := 1
	for _, t := range f.tokens {
		if t.kind == literalToken {
			continue
		}
		v, ok := t.value(m[group])
		group++
		if !ok {
			return PartialDate{}, false
		}
		p = p.Set(t.field, v)
	}

	check := [fieldCount]int{0, 1, 1, 0, 0, 0, 0}
	for fld := Year; fld < fieldCount; fld++ {
		if p.Fields.Has(fld) {
			check[fld] = p.Values[fld]
		}
	}
	if !inRange(check) {
		return PartialDate{}, false
	}
	return p, true
}

/**************************************************************************************************
** Render formats t with the pattern: every token expands to the matching field, zero-padded
** to the token width, and literals pass through unchanged.
**
** @param t - Timestamp to render
** @return string - The rendered text
**************************************************************************************************/
func (f *DateFormat) Render(t time.Time) string {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	values := [fieldCount]int{year, int(month), day, hour, minute, second, t.Nanosecond() / int(time.Millisecond)}

	var b strings.Builder
	for _, tok := range f.tokens {
		b.WriteString(tok.render(values))
	}
	return b.String()
}
