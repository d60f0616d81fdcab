// Package uri derives collection, instance and nested paths for a resource.
package uri

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// IDPlaceholder is substituted with the entity identity on instance paths.
const IDPlaceholder = ":id"

// Segment is one ancestor in a nesting chain. ID is either a literal value or
// a placeholder starting with ':'.
type Segment struct {
	Resource string
	ID       string
}

// Nesting lists ancestors from outermost to innermost.
type Nesting []Segment

// ParseNesting reads entries of the form "Company:company_id". Numeric ids are
// kept literally; anything else becomes a ':'-prefixed placeholder.
func ParseNesting(entries []string) (Nesting, error) {
	var nesting Nesting
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		resourceName, idSegment, ok := strings.Cut(trimmed, ":")
		resourceName = strings.TrimSpace(resourceName)
		idSegment = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(idSegment), ":"))
		if !ok || resourceName == "" || idSegment == "" {
			return nil, fmt.Errorf("nesting entry %q must look like Resource:id_segment", trimmed)
		}
		if !isNumeric(idSegment) {
			idSegment = ":" + idSegment
		}
		nesting = append(nesting, Segment{Resource: resourceName, ID: idSegment})
	}
	return nesting, nil
}

// Placeholders returns the unresolved placeholders of the chain in order.
func (n Nesting) Placeholders() []string {
	var placeholders []string
	for _, segment := range n {
		if strings.HasPrefix(segment.ID, ":") {
			placeholders = append(placeholders, segment.ID)
		}
	}
	return placeholders
}

type Option func(*Resolver)

// WithURI replaces path derivation with an explicit collection path.
func WithURI(path string) Option {
	return func(r *Resolver) {
		r.explicit = strings.TrimSpace(path)
	}
}

// WithNesting declares the ancestors of the resource.
func WithNesting(nesting Nesting) Option {
	return func(r *Resolver) {
		r.nesting = append(Nesting(nil), nesting...)
	}
}

// Resolver computes paths for one resource. It is immutable once built.
type Resolver struct {
	name     string
	explicit string
	nesting  Nesting
	path     string
}

func NewResolver(name string, opts ...Option) (*Resolver, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("resource name is required")
	}

	resolver := &Resolver{name: trimmed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(resolver)
	}
	resolver.path = resolver.buildPath()
	return resolver, nil
}

func (r *Resolver) ResourceName() string {
	return r.name
}

func (r *Resolver) Nesting() Nesting {
	return append(Nesting(nil), r.nesting...)
}

// Path returns the collection path with every placeholder intact.
func (r *Resolver) Path() string {
	return r.path
}

func (r *Resolver) CollectionURI(replacements Replacements) string {
	return replacements.Apply(r.path)
}

func (r *Resolver) InstanceURI(replacements Replacements) string {
	return replacements.Apply(joinPath(r.path, IDPlaceholder))
}

func (r *Resolver) CreateURI(replacements Replacements) string {
	return r.CollectionURI(replacements)
}

func (r *Resolver) UpdateURI(replacements Replacements) string {
	return r.InstanceURI(replacements)
}

func (r *Resolver) DeleteURI(replacements Replacements) string {
	return r.InstanceURI(replacements)
}

func (r *Resolver) buildPath() string {
	if r.explicit != "" {
		return "/" + strings.Trim(r.explicit, "/")
	}

	segments := make([]string, 0, len(r.nesting)*2+1)
	for _, ancestor := range r.nesting {
		segments = append(segments, CollectionName(ancestor.Resource), ancestor.ID)
	}
	segments = append(segments, CollectionName(r.name))
	return "/" + strings.Join(segments, "/")
}

// CollectionName tableizes and pluralizes a resource name: "JobPosting"
// becomes "job_postings".
func CollectionName(resourceName string) string {
	return inflection.Plural(Tableize(resourceName))
}

// Tableize converts a type-style name into snake case.
func Tableize(resourceName string) string {
	return strcase.ToSnake(strings.TrimSpace(resourceName))
}

// NameOf returns the bare type name of v, dereferencing pointers.
func NameOf(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

func joinPath(base string, segment string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(segment, "/")
}

func isNumeric(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}
