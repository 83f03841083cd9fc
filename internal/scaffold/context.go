package scaffold

import "strconv"

// Placeholder names available to templates.
const (
	VarCookbookName  = "cookbook_name"
	VarWinRMPort     = "winrm_port"
	VarVagrantBox    = "vagrant_box"
	VarVagrantBoxURL = "vagrant_box_url"
	VarBoxHostname   = "box_hostname"
	VarReviewHost    = "reviewhost"
	VarCopyright     = "copyright"
	VarEmail         = "email"
	VarLicense       = "license"
)

// Defaults applied by NewContext when a parameter is left empty.
const (
	DefaultWinRMPort     = 5985
	DefaultVagrantBox    = "ge_windows2008r2"
	DefaultVagrantBoxURL = "http://acusvinolare001.frictionless.capital.ge.com/virtualbox/ge_windows2008r2.box"
	DefaultBoxHostname   = "windows2008r2"
	DefaultCopyright     = "YOUR_COMPANY_NAME"
	DefaultEmail         = "YOUR_EMAIL"
	DefaultLicense       = "reserved"
)

// Params holds the values a Context is built from. Zero values fall back
// to the package defaults; ReviewHost has no default.
type Params struct {
	CookbookName  string
	WinRMPort     int
	VagrantBox    string
	VagrantBoxURL string
	BoxHostname   string
	ReviewHost    string
	Copyright     string
	Email         string
	License       string
}

// Var is one named Context value.
type Var struct {
	Name  string
	Value string
}

// Context is the ordered, immutable set of values templates may reference.
type Context struct {
	vars []Var
}

// NewContext builds a Context from p, applying defaults.
func NewContext(p Params) Context {
	if p.WinRMPort == 0 {
		p.WinRMPort = DefaultWinRMPort
	}
	return Context{vars: []Var{
		{VarCookbookName, p.CookbookName},
		{VarWinRMPort, strconv.Itoa(p.WinRMPort)},
		{VarVagrantBox, orDefault(p.VagrantBox, DefaultVagrantBox)},
		{VarVagrantBoxURL, orDefault(p.VagrantBoxURL, DefaultVagrantBoxURL)},
		{VarBoxHostname, orDefault(p.BoxHostname, DefaultBoxHostname)},
		{VarReviewHost, p.ReviewHost},
		{VarCopyright, orDefault(p.Copyright, DefaultCopyright)},
		{VarEmail, orDefault(p.Email, DefaultEmail)},
		{VarLicense, orDefault(p.License, DefaultLicense)},
	}}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Lookup returns the value bound to name.
func (c Context) Lookup(name string) (string, bool) {
	for _, v := range c.vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Vars returns a copy of the Context values in order.
func (c Context) Vars() []Var {
	out := make([]Var, len(c.vars))
	copy(out, c.vars)
	return out
}

// Names returns the placeholder names in order.
func (c Context) Names() []string {
	names := make([]string, len(c.vars))
	for i, v := range c.vars {
		names[i] = v.Name
	}
	return names
}
