package weburl

type schemeInfo struct {
	defaultPort uint16
	hasPort     bool
}

// specialSchemes is the closed table of special schemes and their default
// ports. file is special but has no default port.
var specialSchemes = map[string]schemeInfo{
	"ftp":   {defaultPort: 21, hasPort: true},
	"file":  {},
	"http":  {defaultPort: 80, hasPort: true},
	"https": {defaultPort: 443, hasPort: true},
	"ws":    {defaultPort: 80, hasPort: true},
	"wss":   {defaultPort: 443, hasPort: true},
}

// IsSpecialScheme reports whether scheme is one of ftp, file, http, https,
// ws or wss.
func IsSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

// DefaultPort returns the default port of a special scheme.
func DefaultPort(scheme string) (uint16, bool) {
	info, ok := specialSchemes[scheme]
	if !ok || !info.hasPort {
		return 0, false
	}
	return info.defaultPort, true
}
