package config

import "time"

const (
	CatalogFileEnvVar         = "RESTRECORD_CONFIG"
	DefaultCatalogPath        = "~/.restrecord/resources.yaml"
	FormatJSON                = "json"
	FormatXML                 = "xml"
	DefaultIdentityProperty   = "id"
	DefaultCollectionKey      = "collection"
	DefaultScratchDisk        = "/tmp"
	DefaultTransportTimeout   = 30 * time.Second
	DefaultSearchParameter    = "search"
	DefaultSearchProperty     = "property"
	DefaultSearchOperator     = "operator"
	DefaultSearchValue        = "value"
	DefaultLogicalOperatorKey = "logical_operator"
	DefaultOrderByKey         = "order_by"
	DefaultOrderDirKey        = "order_dir"
)

// Catalog is the on-disk set of resource definitions. Values in Defaults are
// inherited by every resource that leaves the matching field empty.
type Catalog struct {
	Defaults  Resource   `yaml:"defaults,omitempty"`
	Resources []Resource `yaml:"resources"`
}

// Resource is the complete per-resource configuration bound into a client.
// It replaces process-wide class state: two clients built from two Resource
// values never share mutable settings.
type Resource struct {
	Name                string            `yaml:"name"`
	URI                 string            `yaml:"uri,omitempty"`
	BaseURI             string            `yaml:"base-uri,omitempty"`
	NestedUnder         StringList        `yaml:"nested-under,omitempty"`
	Format              string            `yaml:"format,omitempty"`
	HTTPMethodParam     string            `yaml:"http-method-param,omitempty"`
	ScratchDiskLocation string            `yaml:"scratch-disk-location,omitempty"`
	Guarded             StringList        `yaml:"guarded,omitempty"`
	FileFields          StringList        `yaml:"file-fields,omitempty"`
	ReadOnlyFields      StringList        `yaml:"read-only-fields,omitempty"`
	IdentityProperty    string            `yaml:"identity-property,omitempty"`
	CollectionKey       string            `yaml:"collection-key,omitempty"`
	Search              *Search           `yaml:"search,omitempty"`
	DefaultHeaders      map[string]string `yaml:"default-headers,omitempty"`
	Auth                *Auth             `yaml:"auth,omitempty"`
	Transport           *Transport        `yaml:"transport,omitempty"`
}

// Search names the query-string keys used by finders.
type Search struct {
	Parameter       string `yaml:"parameter,omitempty"`
	Property        string `yaml:"property,omitempty"`
	Operator        string `yaml:"operator,omitempty"`
	Value           string `yaml:"value,omitempty"`
	LogicalOperator string `yaml:"logical-operator,omitempty"`
	OrderBy         string `yaml:"order-by,omitempty"`
	OrderDir        string `yaml:"order-dir,omitempty"`
}

type Auth struct {
	BasicAuth *BasicAuth `yaml:"basic-auth,omitempty"`
}

type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Transport struct {
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	MaxRetries        int           `yaml:"max-retries,omitempty"`
	RequestsPerSecond float64       `yaml:"requests-per-second,omitempty"`
	Burst             int           `yaml:"burst,omitempty"`
	TLS               *TLS          `yaml:"tls,omitempty"`
}

// TLS configures the client side of HTTPS connections. Files are PEM.
type TLS struct {
	CACertFile         string `yaml:"ca-cert-file,omitempty"`
	ClientCertFile     string `yaml:"client-cert-file,omitempty"`
	ClientKeyFile      string `yaml:"client-key-file,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure-skip-verify,omitempty"`
}

// Credentials returns the basic auth pair when both parts are configured.
func (r Resource) Credentials() (BasicAuth, bool) {
	if r.Auth == nil || r.Auth.BasicAuth == nil {
		return BasicAuth{}, false
	}
	basic := *r.Auth.BasicAuth
	if basic.Username == "" || basic.Password == "" {
		return BasicAuth{}, false
	}
	return basic, true
}
