package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	contentTypeForm   = "application/x-www-form-urlencoded"
	contentTypeUpdate = "application/sparql-update"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrUnexpectedShape  = errors.New("unexpected response shape")
)

// Request is the library-independent form of an operation. Every driver
// sends exactly these bytes so the libraries are compared on equal input.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte
}

// NewRequest encodes an operation for the given endpoint following the
// SPARQL 1.1 protocol.
func NewRequest(endpoint string, op *Operation) (*Request, error) {
	if op.IsUpdate() {
		return &Request{
			Method: http.MethodPost,
			URL:    endpoint,
			Header: map[string]string{"Content-Type": contentTypeUpdate},
			Body:   []byte(op.Text),
		}, nil
	}

	header := map[string]string{"Accept": op.Expect.Accept()}
	form := url.Values{"query": {op.Text}}

	switch strings.ToUpper(op.Method) {
	case http.MethodGet:
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("url.Parse: %w", err)
		}
		q := u.Query()
		q.Set("query", op.Text)
		u.RawQuery = q.Encode()

		return &Request{
			Method: http.MethodGet,
			URL:    u.String(),
			Header: header,
		}, nil

	case http.MethodPost, "":
		header["Content-Type"] = contentTypeForm
		return &Request{
			Method: http.MethodPost,
			URL:    endpoint,
			Header: header,
			Body:   []byte(form.Encode()),
		}, nil

	default:
		return nil, fmt.Errorf("method %q is not supported", op.Method)
	}
}

// UpdateOperation wraps a bare update text so it can be sent through a driver.
func UpdateOperation(name, text string) *Operation {
	return &Operation{
		Name:     name,
		Category: CategoryUpdate,
		Method:   http.MethodPost,
		Text:     text,
		Expect:   ResultKindEmpty,
	}
}

// CheckResponse validates status and body against the expected result kind.
// It runs after the elapsed time is taken, so it is not part of the
// measurement.
func CheckResponse(op *Operation, status int, body []byte) error {
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	var key string
	switch op.Expect {
	case ResultKindBoolean:
		key = "boolean"
	case ResultKindTable:
		key = "results"
	default:
		return nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: %s", ErrUnexpectedShape, err)
	}
	if _, ok := doc[key]; !ok {
		return fmt.Errorf("%w: missing %q member", ErrUnexpectedShape, key)
	}

	return nil
}
