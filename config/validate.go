package config

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/crmarques/restrecord/faults"
)

// Validate checks a resource after WithDefaults has been applied.
func (r Resource) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.BaseURI, validation.Required, validation.By(validateBaseURI)),
		validation.Field(&r.Format, validation.Required, validation.In(FormatJSON, FormatXML)),
		validation.Field(&r.IdentityProperty, validation.Required),
		validation.Field(&r.CollectionKey, validation.Required),
		validation.Field(&r.ScratchDiskLocation, validation.Required),
		validation.Field(&r.Auth, validation.By(validateAuth)),
		validation.Field(&r.Transport, validation.By(validateTransport)),
	)
	if err != nil {
		return validationError("invalid resource configuration "+quoteName(r.Name), err)
	}

	if r.FileFields.Contains(r.IdentityProperty) {
		return validationError("identity property "+r.IdentityProperty+" cannot be a file field", nil)
	}
	return nil
}

func validateBaseURI(value any) error {
	raw, _ := value.(string)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("host is required")
	}
	return nil
}

func validateAuth(value any) error {
	auth, _ := value.(*Auth)
	if auth == nil || auth.BasicAuth == nil {
		return nil
	}
	basic := auth.BasicAuth
	if (basic.Username == "") != (basic.Password == "") {
		return errors.New("basic-auth requires both username and password")
	}
	return nil
}

func validateTransport(value any) error {
	transport, _ := value.(*Transport)
	if transport == nil {
		return nil
	}
	return validation.ValidateStruct(transport,
		validation.Field(&transport.MaxRetries, validation.Min(0)),
		validation.Field(&transport.RequestsPerSecond, validation.Min(0.0)),
		validation.Field(&transport.Burst, validation.Min(0)),
		validation.Field(&transport.TLS, validation.By(validateTLS)),
	)
}

func validateTLS(value any) error {
	tls, _ := value.(*TLS)
	if tls == nil {
		return nil
	}
	if (strings.TrimSpace(tls.ClientCertFile) == "") != (strings.TrimSpace(tls.ClientKeyFile) == "") {
		return errors.New("requires both client-cert-file and client-key-file")
	}
	return nil
}

func quoteName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "<unnamed>"
	}
	return `"` + name + `"`
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}
