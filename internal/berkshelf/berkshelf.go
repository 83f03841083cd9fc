package berkshelf

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knife-kitchen/kitchen/internal/branding"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FileName is the config document name inside the Berkshelf directory.
const FileName = "config.json"

//go:embed schema/config.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Config is the subset of the Berkshelf document the doctor compares.
type Config struct {
	SSL  SSL  `json:"ssl"`
	Chef Chef `json:"chef"`
}

// SSL holds the ssl section. Verify is kept loosely typed because older
// Berkshelf releases wrote it as a string.
type SSL struct {
	Verify any `json:"verify"`
}

// Chef holds the chef section.
type Chef struct {
	ChefServerURL     string `json:"chef_server_url"`
	ValidationKeyPath string `json:"validation_key_path"`
	ClientKey         string `json:"client_key"`
	NodeName          string `json:"node_name"`
}

// VerifyDisabled reports whether ssl.verify is false (or "false").
func (c *Config) VerifyDisabled() bool {
	return fmt.Sprint(c.SSL.Verify) == "false"
}

// VerifyString renders ssl.verify as it appears in the document.
func (c *Config) VerifyString() string {
	if c.SSL.Verify == nil {
		return ""
	}
	return fmt.Sprint(c.SSL.Verify)
}

// Issue is one schema violation.
type Issue struct {
	Path    string // instance location, e.g. "/chef/client_key"
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Path returns ~/.berkshelf/config.json for home.
func Path(home string) string {
	return filepath.Join(home, branding.BerkshelfDir(), FileName)
}

// Load reads and parses the document at path. Schema violations are
// returned as issues alongside the best-effort decoded Config; err is set
// only when the file cannot be read or is not JSON at all.
func Load(path string) (*Config, []Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a Berkshelf config document.
func Parse(data []byte) (*Config, []Issue, error) {
	stripped := jsonc.ToJSON(data)

	var cfg Config
	if err := json.Unmarshal(stripped, &cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, nil, fmt.Errorf("parsing berkshelf config: %w", err)
		}
	}

	issues, err := validate(stripped)
	if err != nil {
		return nil, nil, err
	}
	return &cfg, issues, nil
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("berkshelf-config.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("berkshelf-config.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

func validate(jsonData []byte) ([]Issue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, Issue{Message: ve.Error()})
	}
	return issues, nil
}

// collectIssues walks the error tree and keeps leaf errors.
func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	msg := ve.Error()
	if ve.ErrorKind != nil {
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	*issues = append(*issues, Issue{Path: path, Message: msg})
}
