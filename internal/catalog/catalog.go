// Package catalog holds the canonical benchmark configuration table: the
// ordered method list, dataset category membership and display names.
//
// Every view classifies datasets through a single Catalog so that category
// membership cannot drift between pages.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// maxSuggestDistance bounds the edit distance Suggest accepts.
const maxSuggestDistance = 2

// Category is a coarse grouping of benchmark datasets by structure type.
type Category string

const (
	Nuclear Category = "Nuclear"
	Gland   Category = "Gland"
	Tissue  Category = "Tissue"
	Other   Category = "Other"
)

// NamedCategories lists the categories that take part in category ranking, in display order.
var NamedCategories = []Category{Nuclear, Gland, Tissue}

// ErrDuplicateMembership is returned when a dataset is listed under more than one category.
var ErrDuplicateMembership = errors.New("dataset listed in more than one category")

//go:embed default.yaml
var defaultYAML []byte

var validate = validator.New()

// Method describes one adaptation strategy.
type Method struct {
	Key     string `yaml:"key" json:"key" validate:"required"`
	Display string `yaml:"display" json:"display"`
	Color   string `yaml:"color" json:"color" validate:"omitempty,hexcolor"`
}

// CategoryEntry lists the datasets belonging to one named category.
type CategoryEntry struct {
	Name     Category `yaml:"name" validate:"required,oneof=Nuclear Gland Tissue"`
	Datasets []string `yaml:"datasets" validate:"dive,required"`
}

// File is the on-disk shape of a catalog.
type File struct {
	Methods    []Method          `yaml:"methods" validate:"required,min=1,dive"`
	Categories []CategoryEntry   `yaml:"categories" validate:"dive"`
	Models     map[string]string `yaml:"models"`
	Datasets   map[string]string `yaml:"datasets"`
}

// Catalog is the immutable, validated form of a File.
type Catalog struct {
	methods     []Method
	methodIndex map[string]Method
	membership  map[string]Category
	members     map[Category][]string
	models      map[string]string
	datasets    map[string]string
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path. An empty path selects the embedded default.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML catalog bytes.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f)
}

// New validates f and builds the lookup tables.
func New(f File) (*Catalog, error) {
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c := &Catalog{
		methods:     make([]Method, 0, len(f.Methods)),
		methodIndex: make(map[string]Method, len(f.Methods)),
		membership:  make(map[string]Category),
		members:     make(map[Category][]string),
		models:      make(map[string]string, len(f.Models)),
		datasets:    make(map[string]string, len(f.Datasets)),
	}

	for _, m := range f.Methods {
		if _, dup := c.methodIndex[m.Key]; dup {
			return nil, fmt.Errorf("invalid catalog: method %q listed twice", m.Key)
		}
		c.methods = append(c.methods, m)
		c.methodIndex[m.Key] = m
	}

	for _, entry := range f.Categories {
		for _, ds := range entry.Datasets {
			if prev, ok := c.membership[ds]; ok {
				return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateMembership, ds, prev, entry.Name)
			}
			c.membership[ds] = entry.Name
			c.members[entry.Name] = append(c.members[entry.Name], ds)
		}
	}

	for k, v := range f.Models {
		c.models[k] = v
	}
	for k, v := range f.Datasets {
		c.datasets[k] = v
	}
	return c, nil
}

// Classify returns the category whose membership list contains dataset,
// matched exactly and case-sensitively, or Other.
func (c *Catalog) Classify(dataset string) Category {
	if cat, ok := c.membership[dataset]; ok {
		return cat
	}
	return Other
}

// Datasets returns the configured members of category in catalog order.
func (c *Catalog) Datasets(category Category) []string {
	return append([]string(nil), c.members[category]...)
}

// CaseCollisions reports member datasets whose names differ only by case,
// such as Kumar and kumar. Each group is sorted; groups are sorted by first name.
func (c *Catalog) CaseCollisions() [][]string {
	fold := cases.Fold()
	groups := make(map[string][]string)
	for ds := range c.membership {
		folded := fold.String(ds)
		groups[folded] = append(groups[folded], ds)
	}
	var out [][]string
	for _, g := range groups {
		if len(g) < 2 {
			continue
		}
		sort.Strings(g)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Suggest returns the categorized dataset closest to an uncategorized name,
// compared case-insensitively. It reports false when dataset is already
// categorized or nothing is within a small edit distance.
func (c *Catalog) Suggest(dataset string) (string, bool) {
	if _, ok := c.membership[dataset]; ok {
		return "", false
	}
	fold := cases.Fold()
	target := fold.String(dataset)

	known := make([]string, 0, len(c.membership))
	for ds := range c.membership {
		known = append(known, ds)
	}
	sort.Strings(known)

	best, bestDist := "", maxSuggestDistance+1
	for _, ds := range known {
		if d := levenshtein.ComputeDistance(target, fold.String(ds)); d < bestDist {
			best, bestDist = ds, d
		}
	}
	return best, best != ""
}

// Methods returns the configured methods in order.
func (c *Catalog) Methods() []Method {
	return append([]Method(nil), c.methods...)
}

// MethodKeys returns the configured method keys in order.
func (c *Catalog) MethodKeys() []string {
	keys := make([]string, len(c.methods))
	for i, m := range c.methods {
		keys[i] = m.Key
	}
	return keys
}

// Method looks up a method by key.
func (c *Catalog) Method(key string) (Method, bool) {
	m, ok := c.methodIndex[key]
	return m, ok
}

// MethodDisplay returns the display name of a method, or the key itself.
func (c *Catalog) MethodDisplay(key string) string {
	if m, ok := c.Method(key); ok && m.Display != "" {
		return m.Display
	}
	return key
}

// MethodColor returns the chart color of a method, or "" when none is configured.
func (c *Catalog) MethodColor(key string) string {
	m, _ := c.Method(key)
	return m.Color
}

// ModelDisplay returns the display name of a model, or the key itself.
func (c *Catalog) ModelDisplay(key string) string {
	if v, ok := c.models[key]; ok {
		return v
	}
	return key
}

// DatasetDisplay returns the display name of a dataset, or the key itself.
func (c *Catalog) DatasetDisplay(key string) string {
	if v, ok := c.datasets[key]; ok {
		return v
	}
	return key
}
