package record

import "github.com/crmarques/restrecord/faults"

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

// wrapTransportError keeps typed errors and marks the rest as transport
// failures.
func wrapTransportError(err error) error {
	if faults.CategoryOf(err) != "" {
		return err
	}
	return faults.NewTypedError(faults.TransportError, "remote request failed", err)
}
