package pattern

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/majorfi/datetool/pkg/utils"
)

/**************************************************************************************************
** Template grammar
**
** A template is a "/"-separated list of segments, one per path depth, deepest last. A source
** segment takes one of these shapes:
**
**   ""                      no pattern
**   yyyyMMdd                plain date format, matched against the whole path segment
**   yyyyMMdd_[.*]           inline form: format text mixed with [regex] capture groups
**   <([0-9]+).*>$1=yyyyMMdd explicit form: anchored regex, rewrite, then date format
**
** In the inline form every [regex] is one capture group, numbered by bracket order. Groups
** nested inside a bracket are not exposed; use the explicit form to reach submatches.
**
** A target segment is format text mixed with [placeholder] groups, where a placeholder
** expands $n, ${n}, $& (or $0) and $$ against the groups captured at the same depth. An empty
** target segment copies the path segment found at that depth.
**
** Malformed segments (unbalanced brackets, invalid regex, bad placeholder) never fail the
** compilation: they are kept as "no pattern" and, on the target side, as literal text.
**************************************************************************************************/

type segmentKind int

const (
	kindNone segmentKind = iota
	kindPlain
	kindInline
	kindExplicit
)

func (k segmentKind) String() string {
	switch k {
	case kindPlain:
		return "plain"
	case kindInline:
		return "inline"
	case kindExplicit:
		return "explicit"
	default:
		return "none"
	}
}

type datePart struct {
	group  int
	format *DateFormat
}

/**************************************************************************************************
** SourceSegment is the compiled extraction rule for one depth of the source template.
**************************************************************************************************/
type SourceSegment struct {
	Raw    string
	kind   segmentKind
	format *DateFormat     // plain and explicit forms
	regex  *regexp.Regexp  // inline and explicit forms, anchored
	subst  expansion       // explicit form
	parts  []datePart      // inline form: submatches parsed as dates
	groups []int           // inline form: submatch index of each [..] capture
}

// Kind describes the shape the segment was compiled to: none, plain, inline or explicit.
func (s SourceSegment) Kind() string {
	return s.kind.String()
}

// HasDate reports whether the segment can contribute date information at all.
func (s SourceSegment) HasDate() bool {
	switch s.kind {
	case kindPlain, kindExplicit:
		return s.format != nil && s.format.HasFields()
	case kindInline:
		return len(s.parts) > 0
	default:
		return false
	}
}

/**************************************************************************************************
** SourceTemplate is the compiled source template, segments in path order.
**************************************************************************************************/
type SourceTemplate struct {
	Raw      string
	Segments []SourceSegment
}

/**************************************************************************************************
** CompileSource compiles the template used to match input paths.
**
** @param template - Source template, e.g. "<([0-9]+).*>$1=yyyyMMdd/[.*]"
** @return *SourceTemplate - Compiled template; never nil
**************************************************************************************************/
func CompileSource(template string) *SourceTemplate {
	raw := strings.Split(template, "/")
	t := &SourceTemplate{Raw: template, Segments: make([]SourceSegment, len(raw))}
	for i, segment := range raw {
		t.Segments[i] = compileSourceSegment(segment)
	}
	return t
}

func compileSourceSegment(raw string) SourceSegment {
	none := SourceSegment{Raw: raw, kind: kindNone}
	if raw == "" {
		return none
	}
	if strings.HasPrefix(raw, "<") {
		if s, ok := compileExplicit(raw); ok {
			return s
		}
		return none
	}

	pieces, ok := splitBrackets(raw)
	if !ok {
		return none
	}
	if len(pieces) == 1 && !pieces[0].bracket {
		return SourceSegment{Raw: raw, kind: kindPlain, format: CompileFormat(raw)}
	}

	s := SourceSegment{Raw: raw, kind: kindInline}
	var expr strings.Builder
	expr.WriteString("^")
	next := 1
	for _, p := range pieces {
		if !p.bracket {
			format := CompileFormat(p.text)
			if !format.HasFields() {
				expr.WriteString("(?:" + format.expr + ")")
				continue
			}
			expr.WriteString("(" + format.expr + ")")
			s.parts = append(s.parts, datePart{group: next, format: format})
			next++
			continue
		}
		sub, err := utils.RegexCompile(p.text)
		if err != nil {
			return none
		}
		expr.WriteString("(" + p.text + ")")
		s.groups = append(s.groups, next)
		next += 1 + sub.NumSubexp()
	}
	expr.WriteString("$")

	re, err := utils.RegexCompile(expr.String())
	if err != nil {
		return none
	}
	s.regex = re
	return s
}

// compileExplicit parses "<regex>subst=format". The format follows the last "=", the regex
// ends at the last ">" before it.
func compileExplicit(raw string) (SourceSegment, bool) {
	eq := strings.LastIndex(raw, "=")
	if eq < 0 {
		return SourceSegment{}, false
	}
	left, format := raw[:eq], raw[eq+1:]
	gt := strings.LastIndex(left, ">")
	if gt < 1 {
		return SourceSegment{}, false
	}
	expr, subst := left[1:gt], left[gt+1:]
	if subst == "" {
		subst = "$&"
	}

	re, err := utils.RegexCompile("^(?:" + expr + ")$")
	if err != nil {
		return SourceSegment{}, false
	}
	rewrite, ok := parseExpansion(subst)
	if !ok {
		return SourceSegment{}, false
	}

	s := SourceSegment{Raw: raw, kind: kindExplicit, regex: re, subst: rewrite}
	if format != "" {
		s.format = CompileFormat(format)
	}
	return s, true
}

type targetKind int

const (
	targetPassthrough targetKind = iota
	targetLiteral
	targetParts
)

type targetPart struct {
	format      *DateFormat
	placeholder expansion
}

/**************************************************************************************************
** TargetSegment is the compiled rendering rule for one depth of the target template.
**************************************************************************************************/
type TargetSegment struct {
	Raw   string
	kind  targetKind
	parts []targetPart
}

/**************************************************************************************************
** TargetTemplate is the compiled target template, segments in path order.
**************************************************************************************************/
type TargetTemplate struct {
	Raw      string
	Segments []TargetSegment
}

/**************************************************************************************************
** CompileTarget compiles the template used to produce output paths.
**
** @param template - Target template, e.g. "yyyy/yyyyMMdd/[$1]"
** @return *TargetTemplate - Compiled template; never nil
**************************************************************************************************/
func CompileTarget(template string) *TargetTemplate {
	raw := strings.Split(template, "/")
	t := &TargetTemplate{Raw: template, Segments: make([]TargetSegment, len(raw))}
	for i, segment := range raw {
		t.Segments[i] = compileTargetSegment(segment)
	}
	return t
}

func compileTargetSegment(raw string) TargetSegment {
	if raw == "" {
		return TargetSegment{Raw: raw, kind: targetPassthrough}
	}
	literal := TargetSegment{Raw: raw, kind: targetLiteral}

	pieces, ok := splitBrackets(raw)
	if !ok {
		return literal
	}
	s := TargetSegment{Raw: raw, kind: targetParts}
	for _, p := range pieces {
		if !p.bracket {
			s.parts = append(s.parts, targetPart{format: CompileFormat(p.text)})
			continue
		}
		placeholder, ok := parseExpansion(p.text)
		if !ok {
			return literal
		}
		s.parts = append(s.parts, targetPart{placeholder: placeholder})
	}
	return s
}

type piece struct {
	text    string
	bracket bool
}

/**************************************************************************************************
** splitBrackets cuts a segment into format text and [bracketed] pieces. Outside brackets,
** single-quoted text is skipped so a quoted "[" stays literal. Inside brackets, "\" escapes the
** next character and nested brackets (regex character classes) are balanced.
**
** @param s - The template segment
** @return []piece - Pieces in order, quotes preserved in text pieces
** @return bool - False on an unbalanced bracket
**************************************************************************************************/
func splitBrackets(s string) ([]piece, bool) {
	var pieces []piece
	var current strings.Builder
	depth := 0
	quoted := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if depth > 0 {
			switch c {
			case '\\':
				current.WriteByte(c)
				if i+1 < len(s) {
					i++
					current.WriteByte(s[i])
				}
				continue
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					pieces = append(pieces, piece{text: current.String(), bracket: true})
					current.Reset()
					continue
				}
			}
			current.WriteByte(c)
			continue
		}

		switch {
		case c == '\'':
			quoted = !quoted
		case c == '[' && !quoted:
			if current.Len() > 0 {
				pieces = append(pieces, piece{text: current.String()})
				current.Reset()
			}
			depth = 1
			continue
		case c == ']' && !quoted:
			return nil, false
		}
		current.WriteByte(c)
	}

	if depth > 0 {
		return nil, false
	}
	if current.Len() > 0 {
		pieces = append(pieces, piece{text: current.String()})
	}
	return pieces, true
}

type expansionPart struct {
	literal string
	group   int // -1 for a literal
}

// expansion is a parsed "$1_$2" style template.
type expansion []expansionPart

/**************************************************************************************************
** parseExpansion parses a placeholder template. "$n" takes all following digits, "${n}" is
** delimited, "$&" and "$0" are the whole segment and "$$" is a literal dollar. Any other use
** of "$" is malformed.
**************************************************************************************************/
func parseExpansion(s string) (expansion, bool) {
	var parts expansion
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			parts = append(parts, expansionPart{literal: literal.String(), group: -1})
			literal.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			literal.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			return nil, false
		}
		switch c := s[i+1]; {
		case c == '$':
			literal.WriteByte('$')
			i++
		case c == '&':
			flush()
			parts = append(parts, expansionPart{group: 0})
			i++
		case c == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end <= 0 {
				return nil, false
			}
			n, err := strconv.Atoi(s[i+2 : i+2+end])
			if err != nil || n < 0 {
				return nil, false
			}
			flush()
			parts = append(parts, expansionPart{group: n})
			i += 2 + end
		case c >= '0' && c <= '9':
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(s[i+1 : j])
			flush()
			parts = append(parts, expansionPart{group: n})
			i = j - 1
		default:
			return nil, false
		}
	}
	flush()
	return parts, true
}

// expand substitutes groups into the template; missing groups expand to "".
func (e expansion) expand(groups []string) string {
	var b strings.Builder
	for _, p := range e {
		if p.group < 0 {
			b.WriteString(p.literal)
			continue
		}
		if p.group < len(groups) {
			b.WriteString(groups[p.group])
		}
	}
	return b.String()
}
