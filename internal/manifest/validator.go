package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/overlook.schema.json
var schemaBytes []byte

const schemaID = "overlook.schema.json"

var (
	projectSchema = sync.OnceValues(compileSchema)
	printer       = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one problem found in a project file.
type ValidationIssue struct {
	Path    string // e.g. "/routes/max_concurrent"; empty for the document itself
	Message string
	Keyword string // failing schema keyword, e.g. "type" or "enum"
}

// String formats the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaID, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(schemaID)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return s, nil
}

// Validate checks raw YAML against the project file schema. An empty or
// comment-only document is an empty project and is valid. The error return
// is for YAML syntax errors and schema compilation failures; schema
// violations are reported in the result.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := projectSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	err = schema.Validate(toInstance(doc))
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating: %w", err)
	}
	return &ValidationResult{Issues: issues(ve)}, nil
}

// ValidateFile reads a file and validates it against the project file schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// issues flattens a validation error into one issue per location and
// keyword. The schema's oneOf alternatives (string or list, string or map,
// string or null) each fail with a type error at the same location; those
// are merged into a single "got X, want A or B" issue.
func issues(ve *jsonschema.ValidationError) []ValidationIssue {
	var out []ValidationIssue
	wants := make(map[int][]string) // index in out -> merged wanted types
	typeAt := make(map[string]int)  // path -> index in out
	seen := make(map[string]bool)

	for _, leaf := range leaves(ve, nil) {
		path := pointer(leaf.InstanceLocation)

		if t, ok := leaf.ErrorKind.(*kind.Type); ok {
			i, ok := typeAt[path]
			if !ok {
				i = len(out)
				typeAt[path] = i
				out = append(out, ValidationIssue{Path: path, Keyword: "type"})
			}
			for _, w := range t.Want {
				if !slices.Contains(wants[i], w) {
					wants[i] = append(wants[i], w)
				}
			}
			out[i].Message = printer.Sprintf("got %s, want %s", t.Got, strings.Join(wants[i], " or "))
			continue
		}

		kw := leaf.ErrorKind.KeywordPath()
		if len(kw) == 0 {
			continue
		}
		issue := ValidationIssue{
			Path:    path,
			Keyword: kw[len(kw)-1],
			Message: leaf.ErrorKind.LocalizedString(printer),
		}
		if key := issue.Path + "|" + issue.Keyword + "|" + issue.Message; !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}

	if len(out) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	slices.SortStableFunc(out, func(a, b ValidationIssue) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// leaves collects the errors without causes. Container keywords such as
// oneOf and $ref always carry causes, so only concrete failures remain.
func leaves(ve *jsonschema.ValidationError, acc []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return acc
		}
		return append(acc, ve)
	}
	for _, c := range ve.Causes {
		acc = leaves(c, acc)
	}
	return acc
}

func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	return "/" + strings.Join(loc, "/")
}

// toInstance converts a YAML-decoded value into one the validator accepts.
// Mappings with non-string keys get their keys stringified, and unquoted
// timestamps, which YAML decodes as time.Time, become strings again.
func toInstance(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = toInstance(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = toInstance(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = toInstance(v)
		}
		return a
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}
