package doctor

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/knife-kitchen/kitchen/internal/berkshelf"
	"github.com/knife-kitchen/kitchen/internal/branding"
	"github.com/knife-kitchen/kitchen/internal/config"
	"github.com/knife-kitchen/kitchen/internal/console"
	"github.com/knife-kitchen/kitchen/internal/gitconfig"
	"github.com/knife-kitchen/kitchen/internal/platform"
)

// ErrConfigFileNotFound is returned when the knife config file is unset or
// missing. It stops the run.
var ErrConfigFileNotFound = errors.New("knife config file not found")

// ErrConfigFileUnreadable is returned when the knife config file exists but
// could not be loaded. It stops the run like ErrConfigFileNotFound.
var ErrConfigFileUnreadable = errors.New("knife config file cannot be read")

// Git is the subset of the git CLI the doctor queries.
type Git interface {
	LookPath() (string, error)
	Version(ctx context.Context) (*semver.Version, error)
	Get(ctx context.Context, key string) string
}

// Doctor runs the checklist against one set of settings.
type Doctor struct {
	settings      *config.Settings
	out           *console.Writer
	git           Git
	family        platform.Family
	berkshelfPath string
	configErr     *config.FileError
	logger        *log.Logger
}

// Option configures a Doctor.
type Option func(*Doctor)

// WithOutput sets the status-line writer.
func WithOutput(w *console.Writer) Option {
	return func(d *Doctor) { d.out = w }
}

// WithGit replaces the git CLI client.
func WithGit(g Git) Option {
	return func(d *Doctor) { d.git = g }
}

// WithPlatform overrides the detected platform family.
func WithPlatform(f platform.Family) Option {
	return func(d *Doctor) { d.family = f }
}

// WithBerkshelfPath overrides the location of the Berkshelf config.
func WithBerkshelfPath(path string) Option {
	return func(d *Doctor) { d.berkshelfPath = path }
}

// WithConfigError hands over the error config.Load reported for the knife
// config file, so the location check can report it.
func WithConfigError(err *config.FileError) Option {
	return func(d *Doctor) { d.configErr = err }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Doctor) { d.logger = l }
}

// New returns a Doctor for s. Without options it writes plain lines to
// stdout, queries the git on PATH and reads ~/.berkshelf/config.json.
func New(s *config.Settings, opts ...Option) *Doctor {
	d := &Doctor{
		settings:      s,
		out:           console.Plain(os.Stdout),
		family:        platform.Current(),
		berkshelfPath: berkshelf.Path(config.HomeDir()),
		logger:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.git == nil {
		d.git = gitconfig.New(d.logger)
	}
	return d
}

// Run executes every section in order. It returns ErrConfigFileNotFound or
// ErrConfigFileUnreadable when the knife config is missing or cannot be
// loaded; every other finding is advisory.
func (d *Doctor) Run(ctx context.Context) error {
	if err := d.CheckConfigFile(); err != nil {
		return err
	}
	d.CheckChefBasics()
	d.CheckAuthorship()
	d.CheckKeys()
	d.CheckProxy()
	d.CheckGit(ctx)
	d.CheckVagrant()
	d.CheckBerkshelf()
	return nil
}

// CheckConfigFile reports the knife config location.
func (d *Doctor) CheckConfigFile() error {
	d.out.Header("Check location of knife config")
	file := d.settings.ConfigFile
	if d.configErr != nil {
		d.out.Warnf("%s is set to '%s' which cannot be read", config.KeyConfigFile, d.configErr.Path)
		if d.configErr.Unsupported() {
			d.out.Hintf("The config file must be one of %s", supportedNames())
		} else {
			d.out.Hint(d.configErr.Err.Error())
		}
		return ErrConfigFileUnreadable
	}
	d.checkPaths(config.KeyConfigFile, pathList(file),
		"The config file (knife.yaml) should be stored in a .chef folder here or higher (towards root)")

	if file == "" || !exists(file) {
		return ErrConfigFileNotFound
	}
	return nil
}

// CheckChefBasics reports the Chef server URL and cookbook paths.
func (d *Doctor) CheckChefBasics() {
	d.out.Header("Check chef basics")
	d.checkParam(config.KeyChefServerURL, d.settings.ChefServerURL,
		"chef_server_url should be set to point to your chef server (https://<server.name>/organizations/<orgname>)")
	d.checkPaths(config.KeyCookbookPath, d.settings.CookbookPath,
		"cookbook_path should point to a valid directory")
}

// CheckAuthorship reports the values stamped into new cookbooks.
func (d *Doctor) CheckAuthorship() {
	d.out.Header("Check author and copyright info")
	d.checkParam(config.KeyCookbookCopyright, d.settings.CookbookCopyright,
		"cookbook_copyright should be set to your company name")
	d.checkParam(config.KeyCookbookEmail, d.settings.CookbookEmail,
		"cookbook_email should be set to your eMail address")
}

// CheckKeys reports the client and validation keys.
func (d *Doctor) CheckKeys() {
	d.out.Header("Check keys exist")
	d.checkPaths(config.KeyClientKey, pathList(d.settings.ClientKey),
		"This file is used for authenticating to Chef server and is normally saved in .chef as client.pem")
	d.checkPaths(config.KeyValidationKey, pathList(d.settings.ValidationKey),
		"This file is used for bootstraping new nodes and is stored in .chef as validator.pem")
	d.checkParam(config.KeyValidationClientName, d.settings.ValidationClientName,
		"validation_client_name is normally set to <orgname>-validator")
}

// CheckProxy reports the proxy settings.
func (d *Doctor) CheckProxy() {
	d.out.Header("Check proxy configuration")
	d.checkParam(config.KeyHTTPProxy, d.settings.HTTPProxy,
		"http_proxy should be set to a valid proxy like http://myproxy.example.com:3128")
	d.checkParam(config.KeyHTTPSProxy, d.settings.HTTPSProxy,
		"https_proxy should be set to a valid proxy like http://myproxy.example.com:3128")
	d.checkParam(config.KeyBootstrapProxy, d.settings.BootstrapProxy,
		"bootstrap_proxy should be set to a valid proxy like http://myproxy.example.com:3128")
	d.checkParam(config.KeyNoProxy, d.settings.NoProxy,
		"no_proxy should be set to exclude certain domains like *.example.com from being proxied. Dont add wildcard subnets like 3.*")
}

// CheckVagrant reports the default box settings.
func (d *Doctor) CheckVagrant() {
	d.out.Header("Check Vagrant")
	d.checkParam(config.KeyVagrantBox, d.settings.VagrantBox,
		"vagrant_box should be set to the name of your vagrant box")
	d.checkParam(config.KeyVagrantBoxURL, d.settings.VagrantBoxURL,
		"vagrant_box_url should point to a downloadable vagrant box")
}

// checkParam reports whether a setting has a value.
func (d *Doctor) checkParam(key, value, description string) {
	if value == "" {
		d.out.Warnf("%s is not set", key)
		d.out.Hint(description)
		return
	}
	d.out.OKf("%s is set to '%s'", key, value)
}

// checkPaths reports each configured path of a setting.
func (d *Doctor) checkPaths(key string, paths config.PathList, description string) {
	if len(paths) == 0 {
		d.out.Warnf("%s is not set", key)
		d.out.Hint(description)
		return
	}
	if paths.Multiple() {
		d.out.Warnf("%s has multiple values", key)
	}
	for _, p := range paths {
		d.checkPath(key, p)
	}
}

// checkPath reports whether one path exists.
func (d *Doctor) checkPath(label, path string) bool {
	if exists(path) {
		d.out.OKf("%s is set to '%s'", label, path)
		return true
	}
	d.out.Warnf("%s is set to '%s' which cannot be found", label, path)
	return false
}

func supportedNames() string {
	names := make([]string, len(config.ConfigExtensions))
	for i, ext := range config.ConfigExtensions {
		names[i] = branding.ConfigName() + "." + ext
	}
	return strings.Join(names, ", ")
}

func pathList(p string) config.PathList {
	if p == "" {
		return nil
	}
	return config.PathList{p}
}

func exists(path string) bool {
	_, err := os.Stat(config.ExpandPath(path))
	return err == nil
}
