package weburl

import (
	"strings"
	"unicode/utf8"

	"github.com/rohmanhakim/weburl/pkg/host"
	"github.com/rohmanhakim/weburl/pkg/percent"
)

const eof rune = -1

/*
Parser runs the URL state machine.

Flow:
  - normalize the input (UTF-8 repair, tab/newline removal, trimming)
  - walk the code points with a single cursor, switching on the current state
  - delegate host text to the host parser, components to the percent codec
  - inherit missing components from the base URL when the input is relative

Validation errors are reported to Sink and never change the outcome. Fatal
errors are returned as *ParseError and no URL is produced.

The zero Parser is ready to use and safe for concurrent use.
*/
type Parser struct {
	// BeStrict applies DNS length limits and STD3 rules to domains.
	BeStrict bool
	Sink     DiagnosticSink
}

// Parse parses an absolute URL.
func Parse(input string) (*URL, error) {
	return Parser{}.Parse(input, nil)
}

// ParseWithBase parses input relative to the URL in base. A base that fails
// to parse is reported with ErrCauseInvalidBase.
func ParseWithBase(input, base string) (*URL, error) {
	return Parser{}.ParseWithBase(input, base)
}

// MustParse is like Parse but panics on failure. It is meant for URLs known
// to be valid, such as constants.
func MustParse(input string) *URL {
	u, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return u
}

// Parse resolves ref against u, treating u as the base URL.
func (u *URL) Parse(ref string) (*URL, error) {
	return Parser{}.Parse(ref, u)
}

// Parse parses input against base. base may be nil and is never modified.
func (p Parser) Parse(input string, base *URL) (*URL, error) {
	u := &URL{}
	if err := p.run(input, base, u, stateNone); err != nil {
		return nil, err
	}
	return u, nil
}

func (p Parser) ParseWithBase(input, base string) (*URL, error) {
	b, err := p.Parse(base, nil)
	if err != nil {
		return nil, &ParseError{
			Input:   base,
			Message: err.Error(),
			Cause:   ErrCauseInvalidBase,
			Err:     err,
		}
	}
	return p.Parse(input, b)
}

type machine struct {
	input   []rune
	raw     string
	pointer int
	buffer  strings.Builder

	state    State
	override State
	done     bool

	url  *URL
	base *URL

	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool

	hosts host.Parser
	sink  DiagnosticSink
}

// run drives the state machine over input, writing into u. With an override
// state the parser starts there, u already holds a record, and leading and
// trailing whitespace is kept.
func (p Parser) run(input string, base, u *URL, override State) error {
	m := &machine{
		url:      u,
		base:     base,
		override: override,
		sink:     p.Sink,
	}
	m.hosts = host.Parser{BeStrict: p.BeStrict, Report: m.report}

	m.raw = normalizeInput(input, override == stateNone, m.report)
	m.input = []rune(m.raw)

	m.state = override
	if override == stateNone {
		m.state = StateSchemeStart
	}

	for {
		if err := m.step(m.at(m.pointer)); err != nil {
			return err
		}
		if m.done || m.pointer >= len(m.input) {
			return nil
		}
		m.pointer++
	}
}

func (m *machine) step(c rune) error {
	switch m.state {
	case StateSchemeStart:
		return m.schemeStart(c)
	case StateScheme:
		return m.scheme(c)
	case StateNoScheme:
		return m.noScheme(c)
	case StateSpecialRelativeOrAuthority:
		m.specialRelativeOrAuthority(c)
	case StatePathOrAuthority:
		m.pathOrAuthority(c)
	case StateRelative:
		m.relative(c)
	case StateRelativeSlash:
		m.relativeSlash(c)
	case StateSpecialAuthoritySlashes:
		m.specialAuthoritySlashes(c)
	case StateSpecialAuthorityIgnoreSlashes:
		m.specialAuthorityIgnoreSlashes(c)
	case StateAuthority:
		return m.authority(c)
	case StateHost, StateHostname:
		return m.hostState(c)
	case StatePort:
		return m.portState(c)
	case StateFile:
		m.file(c)
	case StateFileSlash:
		m.fileSlash(c)
	case StateFileHost:
		return m.fileHost(c)
	case StatePathStart:
		m.pathStart(c)
	case StatePath:
		m.pathState(c)
	case StateOpaquePath:
		m.opaquePathState(c)
	case StateQuery:
		m.queryState(c)
	case StateFragment:
		m.fragmentState(c)
	}
	return nil
}

func (m *machine) schemeStart(c rune) error {
	switch {
	case isASCIIAlpha(c):
		m.buffer.WriteRune(toLowerASCII(c))
		m.state = StateScheme
	case m.override == stateNone:
		m.state = StateNoScheme
		m.pointer--
	default:
		return m.fail(ErrCauseInvalidScheme, "scheme must start with an ASCII letter")
	}
	return nil
}

func (m *machine) scheme(c rune) error {
	if isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.' {
		m.buffer.WriteRune(toLowerASCII(c))
		return nil
	}

	if c != ':' {
		if m.override != stateNone {
			return m.fail(ErrCauseInvalidScheme, "invalid scheme code point "+quote(c))
		}
		m.buffer.Reset()
		m.state = StateNoScheme
		m.pointer = -1
		return nil
	}

	scheme := m.buffer.String()
	if m.override != stateNone {
		switch {
		case m.url.IsSpecial() != IsSpecialScheme(scheme):
			return m.fail(ErrCauseSetterRejected, "cannot switch between special and non-special schemes")
		case scheme == "file" && (m.url.includesCredentials() || m.url.hasPort):
			return m.fail(ErrCauseSetterRejected, "file URLs cannot have credentials or a port")
		case m.url.scheme == "file" && m.url.host.Kind() == host.KindEmpty:
			return m.fail(ErrCauseSetterRejected, "file URL with an empty host must keep its scheme")
		}
	}

	m.url.scheme = scheme

	if m.override != stateNone {
		if port, ok := DefaultPort(scheme); ok && m.url.hasPort && m.url.port == port {
			m.url.hasPort = false
			m.url.port = 0
		}
		m.done = true
		return nil
	}

	m.buffer.Reset()
	switch {
	case scheme == "file":
		if !m.remainingStartsWith("//") {
			m.report(CodeSpecialSchemeMissingFollowingSolidus)
		}
		m.state = StateFile
	case m.url.IsSpecial() && m.base != nil && m.base.scheme == scheme:
		m.state = StateSpecialRelativeOrAuthority
	case m.url.IsSpecial():
		m.state = StateSpecialAuthoritySlashes
	case m.remainingStartsWith("/"):
		m.state = StatePathOrAuthority
		m.pointer++
	default:
		m.url.setOpaquePath("")
		m.state = StateOpaquePath
	}
	return nil
}

func (m *machine) noScheme(c rune) error {
	switch {
	case m.base == nil:
		m.report(CodeMissingSchemeNonRelativeURL)
		if hasSchemeDelimiter(m.input) {
			return m.fail(ErrCauseInvalidScheme, "invalid scheme syntax")
		}
		return m.fail(ErrCauseRelativeURLWithoutBase, "no scheme and no base URL")
	case m.base.opaque && c != '#':
		m.report(CodeMissingSchemeNonRelativeURL)
		return m.fail(ErrCauseRelativeURLWithoutBase, "base URL has an opaque path")
	case m.base.opaque:
		m.url.scheme = m.base.scheme
		m.url.setOpaquePath(m.base.opaquePath)
		m.url.query, m.url.hasQuery = m.base.query, m.base.hasQuery
		m.url.fragment, m.url.hasFragment = "", true
		m.state = StateFragment
	case m.base.scheme != "file":
		m.state = StateRelative
		m.pointer--
	default:
		m.state = StateFile
		m.pointer--
	}
	return nil
}

func (m *machine) specialRelativeOrAuthority(c rune) {
	if c == '/' && m.remainingStartsWith("/") {
		m.state = StateSpecialAuthorityIgnoreSlashes
		m.pointer++
		return
	}
	m.report(CodeSpecialSchemeMissingFollowingSolidus)
	m.state = StateRelative
	m.pointer--
}

func (m *machine) pathOrAuthority(c rune) {
	if c == '/' {
		m.state = StateAuthority
		return
	}
	m.state = StatePath
	m.pointer--
}

func (m *machine) relative(c rune) {
	m.url.scheme = m.base.scheme
	switch {
	case c == '/':
		m.state = StateRelativeSlash
	case m.url.IsSpecial() && c == '\\':
		m.report(CodeInvalidReverseSolidus)
		m.state = StateRelativeSlash
	default:
		m.inheritAuthority()
		m.url.path = append([]string(nil), m.base.path...)
		m.url.query, m.url.hasQuery = m.base.query, m.base.hasQuery
		switch c {
		case '?':
			m.url.query, m.url.hasQuery = "", true
			m.state = StateQuery
		case '#':
			m.url.fragment, m.url.hasFragment = "", true
			m.state = StateFragment
		case eof:
		default:
			m.url.query, m.url.hasQuery = "", false
			m.url.shortenPath()
			m.state = StatePath
			m.pointer--
		}
	}
}

func (m *machine) relativeSlash(c rune) {
	switch {
	case m.url.IsSpecial() && (c == '/' || c == '\\'):
		if c == '\\' {
			m.report(CodeInvalidReverseSolidus)
		}
		m.state = StateSpecialAuthorityIgnoreSlashes
	case c == '/':
		m.state = StateAuthority
	default:
		m.inheritAuthority()
		m.state = StatePath
		m.pointer--
	}
}

func (m *machine) inheritAuthority() {
	m.url.username = m.base.username
	m.url.password = m.base.password
	m.url.host = m.base.host
	m.url.port, m.url.hasPort = m.base.port, m.base.hasPort
}

func (m *machine) specialAuthoritySlashes(c rune) {
	if c == '/' && m.remainingStartsWith("/") {
		m.state = StateSpecialAuthorityIgnoreSlashes
		m.pointer++
		return
	}
	m.report(CodeSpecialSchemeMissingFollowingSolidus)
	m.state = StateSpecialAuthorityIgnoreSlashes
	m.pointer--
}

func (m *machine) specialAuthorityIgnoreSlashes(c rune) {
	if c != '/' && c != '\\' {
		m.state = StateAuthority
		m.pointer--
		return
	}
	m.report(CodeSpecialSchemeMissingFollowingSolidus)
}

func (m *machine) authority(c rune) error {
	switch {
	case c == '@':
		m.report(CodeInvalidCredentials)
		buffered := m.buffer.String()
		if m.atSignSeen {
			buffered = "%40" + buffered
		}
		m.atSignSeen = true

		var username, password strings.Builder
		username.WriteString(m.url.username)
		password.WriteString(m.url.password)
		for _, r := range buffered {
			if r == ':' && !m.passwordTokenSeen {
				m.passwordTokenSeen = true
				continue
			}
			if m.passwordTokenSeen {
				percent.WriteEncodedRune(&password, r, percent.Userinfo)
			} else {
				percent.WriteEncodedRune(&username, r, percent.Userinfo)
			}
		}
		m.url.username = username.String()
		m.url.password = password.String()
		m.buffer.Reset()

	case m.isAuthorityEnd(c):
		if m.atSignSeen && m.buffer.Len() == 0 {
			m.report(CodeHostMissing)
			if m.url.IsSpecial() {
				return m.missingHost(true)
			}
			return m.fail(ErrCauseInvalidHost, "credentials without a host")
		}
		m.pointer -= utf8.RuneCountInString(m.buffer.String()) + 1
		m.buffer.Reset()
		m.state = StateHost

	default:
		m.buffer.WriteRune(c)
	}
	return nil
}

func (m *machine) hostState(c rune) error {
	special := m.url.IsSpecial()
	switch {
	case m.override != stateNone && m.url.scheme == "file":
		m.pointer--
		m.state = StateFileHost

	case c == ':' && !m.insideBrackets:
		if m.buffer.Len() == 0 {
			m.report(CodeHostMissing)
			return m.missingHost(special)
		}
		if m.override == StateHostname {
			return m.fail(ErrCauseSetterRejected, "hostname cannot carry a port")
		}
		h, err := m.hosts.Parse(m.buffer.String(), special)
		if err != nil {
			return fromHostError(m.raw, err)
		}
		m.url.host = h
		m.buffer.Reset()
		m.state = StatePort

	case m.isAuthorityEnd(c):
		m.pointer--
		if special && m.buffer.Len() == 0 {
			m.report(CodeHostMissing)
			return m.missingHost(special)
		}
		if m.override != stateNone && m.buffer.Len() == 0 && (m.url.includesCredentials() || m.url.hasPort) {
			return m.fail(ErrCauseSetterRejected, "cannot clear the host of a URL with credentials or a port")
		}
		h, err := m.hosts.Parse(m.buffer.String(), special)
		if err != nil {
			return fromHostError(m.raw, err)
		}
		m.url.host = h
		m.buffer.Reset()
		m.state = StatePathStart
		if m.override != stateNone {
			m.done = true
		}

	default:
		if c == '[' {
			m.insideBrackets = true
		} else if c == ']' {
			m.insideBrackets = false
		}
		m.buffer.WriteRune(c)
	}
	return nil
}

func (m *machine) missingHost(special bool) error {
	if special {
		return m.fail(ErrCauseMissingHostForSpecialScheme, "scheme "+m.url.scheme+" requires a host")
	}
	return m.fail(ErrCauseInvalidHost, "empty host before port")
}

func (m *machine) portState(c rune) error {
	switch {
	case isASCIIDigit(c):
		m.buffer.WriteRune(c)

	case m.isAuthorityEnd(c) || m.override != stateNone:
		if m.buffer.Len() != 0 {
			port, ok := parsePort(m.buffer.String())
			if !ok {
				m.report(CodePortOutOfRange)
				return m.fail(ErrCauseInvalidPort, "port "+m.buffer.String()+" out of range")
			}
			if def, has := DefaultPort(m.url.scheme); has && def == port {
				m.url.port, m.url.hasPort = 0, false
			} else {
				m.url.port, m.url.hasPort = port, true
			}
			m.buffer.Reset()
			if m.override != stateNone {
				m.done = true
				return nil
			}
		}
		switch m.override {
		case stateNone:
		case StateHost:
			// "host:" keeps the existing port
			m.done = true
			return nil
		default:
			m.report(CodePortInvalid)
			return m.fail(ErrCauseInvalidPort, "port must start with a digit")
		}
		m.state = StatePathStart
		m.pointer--

	default:
		m.report(CodePortInvalid)
		return m.fail(ErrCauseInvalidPort, "invalid port code point "+quote(c))
	}
	return nil
}

func (m *machine) file(c rune) {
	m.url.scheme = "file"
	m.url.host = host.Empty()

	switch {
	case c == '/' || c == '\\':
		if c == '\\' {
			m.report(CodeInvalidReverseSolidus)
		}
		m.state = StateFileSlash

	case m.base != nil && m.base.scheme == "file":
		m.url.host = m.base.host
		m.url.path = append([]string(nil), m.base.path...)
		m.url.query, m.url.hasQuery = m.base.query, m.base.hasQuery
		switch c {
		case '?':
			m.url.query, m.url.hasQuery = "", true
			m.state = StateQuery
		case '#':
			m.url.fragment, m.url.hasFragment = "", true
			m.state = StateFragment
		case eof:
		default:
			m.url.query, m.url.hasQuery = "", false
			if !startsWithWindowsDriveLetter(m.input[m.pointer:]) {
				m.url.shortenPath()
			} else {
				m.report(CodeFileInvalidWindowsDriveLetter)
				m.url.path = nil
			}
			m.state = StatePath
			m.pointer--
		}

	default:
		m.state = StatePath
		m.pointer--
	}
}

func (m *machine) fileSlash(c rune) {
	if c == '/' || c == '\\' {
		if c == '\\' {
			m.report(CodeInvalidReverseSolidus)
		}
		m.state = StateFileHost
		return
	}
	if m.base != nil && m.base.scheme == "file" {
		m.url.host = m.base.host
		if !startsWithWindowsDriveLetter(m.input[m.pointer:]) &&
			len(m.base.path) > 0 && isNormalizedWindowsDriveLetter(m.base.path[0]) {
			m.url.path = append(m.url.path, m.base.path[0])
		}
	}
	m.state = StatePath
	m.pointer--
}

func (m *machine) fileHost(c rune) error {
	if c != eof && c != '/' && c != '\\' && c != '?' && c != '#' {
		m.buffer.WriteRune(c)
		return nil
	}

	m.pointer--
	buffered := m.buffer.String()
	switch {
	case m.override == stateNone && isWindowsDriveLetter(buffered):
		// the drive letter stays in the buffer and becomes the first path
		// segment
		m.report(CodeFileInvalidWindowsDriveLetterHost)
		m.state = StatePath

	case buffered == "":
		m.url.host = host.Empty()
		if m.override != stateNone {
			m.done = true
			return nil
		}
		m.state = StatePathStart

	default:
		h, err := m.hosts.Parse(buffered, m.url.IsSpecial())
		if err != nil {
			return fromHostError(m.raw, err)
		}
		if d, ok := h.Domain(); ok && d == "localhost" {
			h = host.Empty()
		}
		m.url.host = h
		if m.override != stateNone {
			m.done = true
			return nil
		}
		m.buffer.Reset()
		m.state = StatePathStart
	}
	return nil
}

func (m *machine) pathStart(c rune) {
	switch {
	case m.url.IsSpecial():
		if c == '\\' {
			m.report(CodeInvalidReverseSolidus)
		}
		m.state = StatePath
		if c != '/' && c != '\\' {
			m.pointer--
		}
	case m.override == stateNone && c == '?':
		m.url.query, m.url.hasQuery = "", true
		m.state = StateQuery
	case m.override == stateNone && c == '#':
		m.url.fragment, m.url.hasFragment = "", true
		m.state = StateFragment
	case c != eof:
		m.state = StatePath
		if c != '/' {
			m.pointer--
		}
	case m.override != stateNone && m.url.host.IsNone():
		m.url.path = append(m.url.path, "")
	}
}

func (m *machine) pathState(c rune) {
	special := m.url.IsSpecial()
	slash := c == '/' || (special && c == '\\')

	if !(c == eof || slash || (m.override == stateNone && (c == '?' || c == '#'))) {
		m.checkURLUnit(c)
		percent.WriteEncodedRune(&m.buffer, c, percent.Path)
		return
	}

	if special && c == '\\' {
		m.report(CodeInvalidReverseSolidus)
	}

	segment := m.buffer.String()
	switch {
	case isDoubleDotSegment(segment):
		m.url.shortenPath()
		if !slash {
			m.url.path = append(m.url.path, "")
		}
	case isSingleDotSegment(segment):
		if !slash {
			m.url.path = append(m.url.path, "")
		}
	default:
		if m.url.scheme == "file" && len(m.url.path) == 0 && isWindowsDriveLetter(segment) {
			segment = segment[:1] + ":"
		}
		m.url.path = append(m.url.path, segment)
	}
	m.buffer.Reset()

	switch c {
	case '?':
		m.url.query, m.url.hasQuery = "", true
		m.state = StateQuery
	case '#':
		m.url.fragment, m.url.hasFragment = "", true
		m.state = StateFragment
	}
}

func (m *machine) opaquePathState(c rune) {
	switch c {
	case '?', '#', eof:
		m.url.opaquePath += m.buffer.String()
		m.buffer.Reset()
		if c == '?' {
			m.url.query, m.url.hasQuery = "", true
			m.state = StateQuery
		} else if c == '#' {
			m.url.fragment, m.url.hasFragment = "", true
			m.state = StateFragment
		}
	default:
		m.checkURLUnit(c)
		percent.WriteEncodedRune(&m.buffer, c, percent.C0Control)
	}
}

func (m *machine) queryState(c rune) {
	if c == eof || (m.override == stateNone && c == '#') {
		set := percent.Query
		if m.url.IsSpecial() {
			set = percent.SpecialQuery
		}
		m.url.query += percent.Encode(m.buffer.String(), set)
		m.buffer.Reset()
		if c == '#' {
			m.url.fragment, m.url.hasFragment = "", true
			m.state = StateFragment
		}
		return
	}
	m.checkURLUnit(c)
	m.buffer.WriteRune(c)
}

func (m *machine) fragmentState(c rune) {
	if c == eof {
		m.url.fragment += m.buffer.String()
		m.buffer.Reset()
		return
	}
	m.checkURLUnit(c)
	percent.WriteEncodedRune(&m.buffer, c, percent.Fragment)
}

// isAuthorityEnd reports whether c terminates the authority, host or port.
func (m *machine) isAuthorityEnd(c rune) bool {
	switch c {
	case eof, '/', '?', '#':
		return true
	case '\\':
		return m.url.IsSpecial()
	}
	return false
}

func (m *machine) checkURLUnit(c rune) {
	if c == '%' {
		if !m.remainingStartsWithEscape() {
			m.report(CodeInvalidURLUnit)
		}
		return
	}
	if !percent.IsURLCodePoint(c) {
		m.report(CodeInvalidURLUnit)
	}
}

func (m *machine) at(i int) rune {
	if i < 0 || i >= len(m.input) {
		return eof
	}
	return m.input[i]
}

// remainingStartsWith compares s against the code points after the cursor.
func (m *machine) remainingStartsWith(s string) bool {
	i := m.pointer + 1
	for _, r := range s {
		if m.at(i) != r {
			return false
		}
		i++
	}
	return true
}

func (m *machine) remainingStartsWithEscape() bool {
	a, b := m.at(m.pointer+1), m.at(m.pointer+2)
	return a >= 0 && a < utf8.RuneSelf && percent.IsHex(byte(a)) &&
		b >= 0 && b < utf8.RuneSelf && percent.IsHex(byte(b))
}

func (m *machine) report(code string) {
	if m.sink == nil {
		return
	}
	m.sink.RecordValidationError(m.raw, ValidationError{
		Code:   code,
		Offset: m.pointer,
		State:  m.state,
	})
}

func (m *machine) fail(cause ParseErrorCause, message string) *ParseError {
	return &ParseError{
		Input:   m.raw,
		Message: message,
		Cause:   cause,
	}
}

// hasSchemeDelimiter reports whether a ':' appears before any '/', '?' or
// '#', meaning the input attempted a scheme.
func hasSchemeDelimiter(input []rune) bool {
	for _, r := range input {
		switch r {
		case ':':
			return true
		case '/', '?', '#':
			return false
		}
	}
	return false
}

func parsePort(digits string) (uint16, bool) {
	var n uint32
	for i := 0; i < len(digits); i++ {
		n = n*10 + uint32(digits[i]-'0')
		if n > 65535 {
			return 0, false
		}
	}
	return uint16(n), true
}

func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

func isNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && s[1] == ':'
}

func startsWithWindowsDriveLetter(rs []rune) bool {
	if len(rs) < 2 || !isASCIIAlpha(rs[0]) || (rs[1] != ':' && rs[1] != '|') {
		return false
	}
	if len(rs) == 2 {
		return true
	}
	switch rs[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

func isSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

func isDoubleDotSegment(s string) bool {
	switch strings.ToLower(s) {
	case "..", ".%2e", "%2e.", "%2e%2e":
		return true
	}
	return false
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func quote(r rune) string {
	if r == eof {
		return "EOF"
	}
	return "'" + string(r) + "'"
}
