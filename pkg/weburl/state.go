package weburl

// State names a state of the URL parser. Setters start the parser in a
// specific state; diagnostics carry the state they were raised in.
type State uint8

const (
	stateNone State = iota
	StateSchemeStart
	StateScheme
	StateNoScheme
	StateSpecialRelativeOrAuthority
	StatePathOrAuthority
	StateRelative
	StateRelativeSlash
	StateSpecialAuthoritySlashes
	StateSpecialAuthorityIgnoreSlashes
	StateAuthority
	StateHost
	StateHostname
	StatePort
	StateFile
	StateFileSlash
	StateFileHost
	StatePathStart
	StatePath
	StateOpaquePath
	StateQuery
	StateFragment
)

var stateNames = [...]string{
	stateNone:                          "none",
	StateSchemeStart:                   "scheme start",
	StateScheme:                        "scheme",
	StateNoScheme:                      "no scheme",
	StateSpecialRelativeOrAuthority:    "special relative or authority",
	StatePathOrAuthority:               "path or authority",
	StateRelative:                      "relative",
	StateRelativeSlash:                 "relative slash",
	StateSpecialAuthoritySlashes:       "special authority slashes",
	StateSpecialAuthorityIgnoreSlashes: "special authority ignore slashes",
	StateAuthority:                     "authority",
	StateHost:                          "host",
	StateHostname:                      "hostname",
	StatePort:                          "port",
	StateFile:                          "file",
	StateFileSlash:                     "file slash",
	StateFileHost:                      "file host",
	StatePathStart:                     "path start",
	StatePath:                          "path",
	StateOpaquePath:                    "opaque path",
	StateQuery:                         "query",
	StateFragment:                      "fragment",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
