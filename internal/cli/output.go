package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rohmanhakim/weburl/internal/config"
	"github.com/rohmanhakim/weburl/pkg/weburl"
	"gopkg.in/yaml.v3"
)

type urlReport struct {
	Input       string   `json:"input,omitempty" yaml:"input,omitempty"`
	Href        string   `json:"href,omitempty" yaml:"href,omitempty"`
	Protocol    string   `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Username    string   `json:"username,omitempty" yaml:"username,omitempty"`
	Password    string   `json:"password,omitempty" yaml:"password,omitempty"`
	Host        string   `json:"host,omitempty" yaml:"host,omitempty"`
	Hostname    string   `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Port        string   `json:"port,omitempty" yaml:"port,omitempty"`
	Pathname    string   `json:"pathname,omitempty" yaml:"pathname,omitempty"`
	Search      string   `json:"search,omitempty" yaml:"search,omitempty"`
	Hash        string   `json:"hash,omitempty" yaml:"hash,omitempty"`
	Origin      string   `json:"origin,omitempty" yaml:"origin,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func newURLReport(input string, u *weburl.URL) urlReport {
	return urlReport{
		Input:    input,
		Href:     u.Href(),
		Protocol: u.Protocol(),
		Username: u.Username(),
		Password: u.Password(),
		Host:     u.Host(),
		Hostname: u.Hostname(),
		Port:     u.Port(),
		Pathname: u.Pathname(),
		Search:   u.Search(),
		Hash:     u.Hash(),
		Origin:   u.Origin(),
	}
}

func (r urlReport) writeText(p *printer) {
	if r.Error != "" {
		p.field("input", r.Input)
		p.field("error", r.Error)
		p.list("diagnostics", r.Diagnostics)
		return
	}
	p.field("href", r.Href)
	p.field("protocol", r.Protocol)
	p.optional("username", r.Username)
	p.optional("password", r.Password)
	p.field("host", r.Host)
	p.field("hostname", r.Hostname)
	p.optional("port", r.Port)
	p.field("pathname", r.Pathname)
	p.optional("search", r.Search)
	p.optional("hash", r.Hash)
	p.field("origin", r.Origin)
	p.optional("fingerprint", r.Fingerprint)
	p.list("diagnostics", r.Diagnostics)
}

// printer writes "label: value" lines and remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) field(label, value string) {
	p.line("%-12s %s", label+":", value)
}

func (p *printer) optional(label, value string) {
	if value != "" {
		p.field(label, value)
	}
}

func (p *printer) list(label string, values []string) {
	for _, v := range values {
		p.field(label, v)
	}
}

func render(w io.Writer, format config.OutputFormat, v any, text func(p *printer)) error {
	switch format {
	case config.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case config.OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		p := &printer{w: w}
		text(p)
		return p.err
	}
}
