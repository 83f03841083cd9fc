package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
)

// Setting keys, in the order they are reported by "config show".
const (
	KeyConfigFile           = "config_file"
	KeyChefServerURL        = "chef_server_url"
	KeyNodeName             = "node_name"
	KeyCookbookPath         = "cookbook_path"
	KeyCookbookCopyright    = "cookbook_copyright"
	KeyCookbookEmail        = "cookbook_email"
	KeyCookbookLicense      = "cookbook_license"
	KeyClientKey            = "client_key"
	KeyValidationKey        = "validation_key"
	KeyValidationClientName = "validation_client_name"
	KeyHTTPProxy            = "http_proxy"
	KeyHTTPSProxy           = "https_proxy"
	KeyBootstrapProxy       = "bootstrap_proxy"
	KeyNoProxy              = "no_proxy"
	KeyReviewHost           = "reviewhost"
	KeyVagrantBox           = "vagrant_box"
	KeyVagrantBoxURL        = "vagrant_box_url"
	KeyKitchenTemplatesPath = "kitchen_templates_path"
)

// Keys lists every setting the tools consume.
var Keys = []string{
	KeyConfigFile,
	KeyChefServerURL,
	KeyNodeName,
	KeyCookbookPath,
	KeyCookbookCopyright,
	KeyCookbookEmail,
	KeyCookbookLicense,
	KeyClientKey,
	KeyValidationKey,
	KeyValidationClientName,
	KeyHTTPProxy,
	KeyHTTPSProxy,
	KeyBootstrapProxy,
	KeyNoProxy,
	KeyReviewHost,
	KeyVagrantBox,
	KeyVagrantBoxURL,
	KeyKitchenTemplatesPath,
}

// Settings is the merged knife configuration. An empty string or empty
// PathList means the setting is absent.
type Settings struct {
	ConfigFile           string   `mapstructure:"-" yaml:"config_file,omitempty"`
	ChefServerURL        string   `mapstructure:"chef_server_url" yaml:"chef_server_url,omitempty"`
	NodeName             string   `mapstructure:"node_name" yaml:"node_name,omitempty"`
	CookbookPath         PathList `mapstructure:"-" yaml:"cookbook_path,omitempty"`
	CookbookCopyright    string   `mapstructure:"cookbook_copyright" yaml:"cookbook_copyright,omitempty"`
	CookbookEmail        string   `mapstructure:"cookbook_email" yaml:"cookbook_email,omitempty"`
	CookbookLicense      string   `mapstructure:"cookbook_license" yaml:"cookbook_license,omitempty"`
	ClientKey            string   `mapstructure:"client_key" yaml:"client_key,omitempty"`
	ValidationKey        string   `mapstructure:"validation_key" yaml:"validation_key,omitempty"`
	ValidationClientName string   `mapstructure:"validation_client_name" yaml:"validation_client_name,omitempty"`
	HTTPProxy            string   `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy           string   `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
	BootstrapProxy       string   `mapstructure:"bootstrap_proxy" yaml:"bootstrap_proxy,omitempty"`
	NoProxy              string   `mapstructure:"no_proxy" yaml:"no_proxy,omitempty"`
	ReviewHost           string   `mapstructure:"reviewhost" yaml:"reviewhost,omitempty"`
	VagrantBox           string   `mapstructure:"vagrant_box" yaml:"vagrant_box,omitempty"`
	VagrantBoxURL        string   `mapstructure:"vagrant_box_url" yaml:"vagrant_box_url,omitempty"`
	KitchenTemplatesPath string   `mapstructure:"kitchen_templates_path" yaml:"kitchen_templates_path,omitempty"`
}

// Lookup returns the value of key as a string or PathList. ok is false for
// keys Settings does not define.
func (s *Settings) Lookup(key string) (value any, ok bool) {
	switch key {
	case KeyConfigFile:
		return s.ConfigFile, true
	case KeyChefServerURL:
		return s.ChefServerURL, true
	case KeyNodeName:
		return s.NodeName, true
	case KeyCookbookPath:
		return s.CookbookPath, true
	case KeyCookbookCopyright:
		return s.CookbookCopyright, true
	case KeyCookbookEmail:
		return s.CookbookEmail, true
	case KeyCookbookLicense:
		return s.CookbookLicense, true
	case KeyClientKey:
		return s.ClientKey, true
	case KeyValidationKey:
		return s.ValidationKey, true
	case KeyValidationClientName:
		return s.ValidationClientName, true
	case KeyHTTPProxy:
		return s.HTTPProxy, true
	case KeyHTTPSProxy:
		return s.HTTPSProxy, true
	case KeyBootstrapProxy:
		return s.BootstrapProxy, true
	case KeyNoProxy:
		return s.NoProxy, true
	case KeyReviewHost:
		return s.ReviewHost, true
	case KeyVagrantBox:
		return s.VagrantBox, true
	case KeyVagrantBoxURL:
		return s.VagrantBoxURL, true
	case KeyKitchenTemplatesPath:
		return s.KitchenTemplatesPath, true
	}
	return nil, false
}

// PathList is a setting that may name one or several paths. A scalar value
// is normalized to a list of one when settings are decoded, so a single-entry
// list and a scalar are indistinguishable afterwards.
type PathList []string

// First returns the first path, or "" for an empty list.
func (p PathList) First() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Multiple reports whether more than one path is configured.
func (p PathList) Multiple() bool { return len(p) > 1 }

// String joins the paths with the OS list separator.
func (p PathList) String() string {
	return strings.Join(p, string(filepath.ListSeparator))
}

// toPathList normalizes a raw config value. Strings are split on the OS list
// separator so KITCHEN_COOKBOOK_PATH=a:b behaves like a YAML list.
func toPathList(raw any) (PathList, error) {
	switch val := raw.(type) {
	case nil:
		return nil, nil
	case string:
		var out PathList
		for _, p := range filepath.SplitList(val) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		items, err := cast.ToStringSliceE(raw)
		if err != nil {
			return nil, err
		}
		var out PathList
		for _, p := range items {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
}
