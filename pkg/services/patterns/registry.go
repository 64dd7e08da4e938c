package patterns

import (
	"fmt"
	"os"
	"regexp"

	"github.com/dp-tools/privacy-atlas/pkg/models/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Rule binds a data type to its detection signature and protection tier.
// A rule matching a field is sufficient to produce a finding; several
// rules may match the same field independently.
type Rule struct {
	DataType       domain.DataType
	Matcher        *regexp.Regexp
	Classification domain.Classification
	GDPRCategory   string
}

// Registry is the ordered set of active detection rules. It is built
// once at startup and read-only afterwards. Rule order only determines
// finding enumeration order within a field, which is implementation
// defined and not a compliance guarantee.
type Registry struct {
	rules []Rule
}

func (r *Registry) Rules() []Rule {
	return r.rules
}

// Builtin returns the default detection rules shipped with the scanner.
func Builtin() *Registry {
	return &Registry{rules: []Rule{
		{
			DataType:       domain.DataTypeEmail,
			Matcher:        regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
			Classification: domain.ClassificationPersonal,
			GDPRCategory:   "Contact Information",
		},
		{
			DataType:       domain.DataTypePhoneNumber,
			Matcher:        regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
			Classification: domain.ClassificationPersonal,
			GDPRCategory:   "Contact Information",
		},
		{
			DataType:       domain.DataTypeSSN,
			Matcher:        regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			Classification: domain.ClassificationSensitive,
			GDPRCategory:   "National Identifier",
		},
		{
			DataType:       domain.DataTypeCreditCard,
			Matcher:        regexp.MustCompile(`\b(?:\d{4}[- ]){3}\d{4}\b|\b\d{16}\b`),
			Classification: domain.ClassificationSensitive,
			GDPRCategory:   "Financial Data",
		},
		{
			DataType:       domain.DataTypeIPAddress,
			Matcher:        regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			Classification: domain.ClassificationPersonal,
			GDPRCategory:   "Online Identifier",
		},
		{
			DataType:       domain.DataTypeDateOfBirth,
			Matcher:        regexp.MustCompile(`\b(?:19|20)\d{2}-(?:0[1-9]|1[0-2])-(?:0[1-9]|[12]\d|3[01])\b`),
			Classification: domain.ClassificationPersonal,
			GDPRCategory:   "Identification Data",
		},
	}}
}

type rulesFile struct {
	Version int        `yaml:"version" validate:"required,gte=1"`
	Rules   []ruleSpec `yaml:"rules" validate:"required,min=1,dive"`
}

type ruleSpec struct {
	DataType       string `yaml:"data_type" validate:"required"`
	Pattern        string `yaml:"pattern" validate:"required"`
	Classification string `yaml:"classification" validate:"required,oneof=PersonalData SensitivePersonalData"`
	GDPRCategory   string `yaml:"gdpr_category" validate:"required"`
}

// Load reads a rules file and returns the registry it defines. The file
// replaces the builtin rules entirely so a deployment can pin an exact
// rule set. Malformed files fail at load time, never during a scan.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for _, spec := range file.Rules {
		matcher, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for %s: %w", spec.DataType, err)
		}
		rules = append(rules, Rule{
			DataType:       domain.DataType(spec.DataType),
			Matcher:        matcher,
			Classification: domain.Classification(spec.Classification),
			GDPRCategory:   spec.GDPRCategory,
		})
	}

	return &Registry{rules: rules}, nil
}
