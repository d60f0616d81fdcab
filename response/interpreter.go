// Package response decodes response bodies and classifies status codes into
// outcomes so callers never inspect codes themselves.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/transport"
)

// ErrorsKey is the payload field carrying validation errors on 422.
const ErrorsKey = "errors"

// Operation selects the status policy applied to a response.
type Operation string

const (
	OperationFind    Operation = "find"
	OperationFindAll Operation = "find-all"
	OperationCreate  Operation = "create"
	OperationUpdate  Operation = "update"
	OperationDestroy Operation = "destroy"
	OperationRaw     Operation = "raw"
)

type Kind string

const (
	KindSuccess           Kind = "Success"
	KindValidationFailure Kind = "ValidationFailure"
	KindNotFound          Kind = "NotFound"
	KindServerError       Kind = "ServerError"
	KindFailure           Kind = "Failure"
)

// Outcome is the classified result of one round trip. Body is the decoded
// payload and Data its object form when the payload is an object.
type Outcome struct {
	Kind       Kind
	Operation  Operation
	StatusCode int
	Body       any
	Data       map[string]any
	Errors     any
}

func (o Outcome) IsSuccess() bool {
	return o.Kind == KindSuccess
}

// Err converts a non-success outcome into a typed fault. Success yields nil.
func (o Outcome) Err() error {
	message := fmt.Sprintf("%s request failed with status %d", o.Operation, o.StatusCode)
	switch o.Kind {
	case KindSuccess:
		return nil
	case KindNotFound:
		return faults.NewTypedError(faults.NotFoundError, message, nil)
	case KindValidationFailure:
		return faults.NewTypedError(faults.ValidationError, message, nil)
	case KindServerError:
		return faults.NewTypedError(faults.ServerError, message, nil)
	}
	if o.StatusCode == http.StatusUnauthorized || o.StatusCode == http.StatusForbidden {
		return faults.NewTypedError(faults.AuthError, message, nil)
	}
	return faults.NewTypedError(faults.ValidationError, "unexpected status: "+message, nil)
}

// Interpreter decodes bodies in one transport format.
type Interpreter struct {
	format string
}

func NewInterpreter(format string) *Interpreter {
	return &Interpreter{format: strings.ToLower(strings.TrimSpace(format))}
}

func (i *Interpreter) Format() string {
	return i.format
}

// Decode parses body in the configured format. An empty body or an unknown
// format yields nil.
func (i *Interpreter) Decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	switch i.format {
	case config.FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.UseNumber()
		var value any
		if err := decoder.Decode(&value); err != nil {
			return nil, faults.NewTypedError(faults.ValidationError, "response body is not valid JSON", err)
		}
		return value, nil
	case config.FormatXML:
		value, err := decodeXML(body)
		if err != nil {
			return nil, faults.NewTypedError(faults.ValidationError, "response body is not valid XML", err)
		}
		return value, nil
	default:
		return nil, nil
	}
}

// ToData decodes body and returns it when it is an object.
func (i *Interpreter) ToData(body []byte) (map[string]any, error) {
	value, err := i.Decode(body)
	if err != nil {
		return nil, err
	}
	data, _ := value.(map[string]any)
	return data, nil
}

// ToErrorObject extracts the errors payload from a failure body. Bodies that
// cannot be parsed yield nil.
func (i *Interpreter) ToErrorObject(body []byte) any {
	data, err := i.ToData(body)
	if err != nil || data == nil {
		return nil
	}
	return data[ErrorsKey]
}

// Interpret classifies resp for op. 404 is NotFound, 422 is a validation
// failure carrying the errors payload, 5xx is a server error, and 2xx is
// success except for destroy, which only accepts 200. Success bodies that fail
// to decode are returned as errors.
func (i *Interpreter) Interpret(op Operation, resp *transport.Response) (Outcome, error) {
	if resp == nil {
		return Outcome{}, faults.NewTypedError(faults.TransportError, "transport returned no response", nil)
	}

	outcome := Outcome{Operation: op, StatusCode: resp.StatusCode}
	status := resp.StatusCode
	switch {
	case status >= 500:
		outcome.Kind = KindServerError
		outcome.Errors = i.ToErrorObject(resp.Body)
		return outcome, nil
	case status == http.StatusNotFound:
		outcome.Kind = KindNotFound
		return outcome, nil
	case status == http.StatusUnprocessableEntity:
		outcome.Kind = KindValidationFailure
		i.attachFailureBody(&outcome, resp.Body)
		return outcome, nil
	case op == OperationDestroy:
		if status == http.StatusOK {
			outcome.Kind = KindSuccess
		} else {
			outcome.Kind = KindFailure
		}
		return outcome, nil
	case status >= 200 && status < 300:
		body, err := i.Decode(resp.Body)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Kind = KindSuccess
		outcome.Body = body
		outcome.Data, _ = body.(map[string]any)
		return outcome, nil
	default:
		outcome.Kind = KindFailure
		i.attachFailureBody(&outcome, resp.Body)
		return outcome, nil
	}
}

// attachFailureBody keeps whatever part of a failure body can be decoded.
func (i *Interpreter) attachFailureBody(outcome *Outcome, body []byte) {
	decoded, err := i.Decode(body)
	if err != nil {
		return
	}
	outcome.Body = decoded
	if data, ok := decoded.(map[string]any); ok {
		outcome.Data = data
		outcome.Errors = data[ErrorsKey]
	}
}
