// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package graphqlhttp sends GraphQL documents over HTTP as described in
// https://graphql.org/learn/serving-over-http/. It builds *http.Requests from
// documents and decodes such requests on the receiving side. It performs no
// network I/O itself.
package graphqlhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.opencensus.io/trace"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-query/graphql"
	"zombiezen.com/go/graphql-query/internal/gqlang"
)

// Request is the set of parameters carried by a GraphQL HTTP request.
type Request struct {
	Query         string          `json:"query"`
	OperationName string          `json:"operationName,omitempty"`
	Variables     json.RawMessage `json:"variables,omitempty"`
}

// NewRequest returns an HTTP request that sends doc to the GraphQL endpoint.
//
// GET and HEAD requests carry the document in the URL query. The query and
// operation name are encoded as by doc.Parameterize(graphql.Encoded) and the
// variables' default values are sent as a percent-encoded JSON object. Only
// queries may be sent this way; a mutation returns an error for which
// StatusCode returns http.StatusBadRequest.
//
// POST requests carry a JSON body with the compact query text, the operation
// name, and the variables' default values as a JSON object.
//
// Any other method returns an error for which StatusCode returns
// http.StatusMethodNotAllowed.
func NewRequest(ctx context.Context, method, endpoint string, doc *graphql.Document) (_ *http.Request, err error) {
	ctx, span := trace.StartSpan(ctx, "graphqlhttp.NewRequest")
	defer func() {
		if err != nil {
			span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: err.Error()})
		}
		span.End()
	}()
	span.AddAttributes(
		trace.StringAttribute("graphql.operation", doc.Operation().Name()),
		trace.StringAttribute("http.method", method),
	)

	switch method {
	case http.MethodGet, http.MethodHead:
		if doc.Operation().IsMutation() {
			return nil, &httpError{
				msg:  fmt.Sprintf("new graphql request: %s requests must be queries", method),
				code: http.StatusBadRequest,
			}
		}
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, xerrors.Errorf("new graphql request: %w", err)
		}
		q, err := encodeQuery(doc)
		if err != nil {
			return nil, xerrors.Errorf("new graphql request: %w", err)
		}
		if u.RawQuery != "" {
			u.RawQuery += "&" + q
		} else {
			u.RawQuery = q
		}
		req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
		if err != nil {
			return nil, xerrors.Errorf("new graphql request: %w", err)
		}
		return req, nil
	case http.MethodPost:
		body, err := marshalBody(doc)
		if err != nil {
			return nil, xerrors.Errorf("new graphql request: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, xerrors.Errorf("new graphql request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	default:
		return nil, &httpError{
			msg:  fmt.Sprintf("new graphql request: method %s not allowed", method),
			code: http.StatusMethodNotAllowed,
		}
	}
}

// encodeQuery returns the URL query of a GET request for doc.
func encodeQuery(doc *graphql.Document) (string, error) {
	params := doc.Parameterize(graphql.Encoded)
	sb := new(strings.Builder)
	sb.WriteString(graphql.QueryParam)
	sb.WriteByte('=')
	sb.WriteString(params[graphql.QueryParam])
	if name, ok := params[graphql.OperationNameParam]; ok {
		sb.WriteByte('&')
		sb.WriteString(graphql.OperationNameParam)
		sb.WriteByte('=')
		sb.WriteString(name)
	}
	vars, err := marshalVariables(doc)
	if err != nil {
		return "", err
	}
	if vars != nil {
		sb.WriteByte('&')
		sb.WriteString(graphql.VariablesParam)
		sb.WriteByte('=')
		sb.WriteString(gqlang.Escape(string(vars)))
	}
	return sb.String(), nil
}

// marshalBody returns the JSON body of a POST request for doc.
func marshalBody(doc *graphql.Document) ([]byte, error) {
	params := doc.Parameterize(graphql.Compact)
	request := Request{
		Query:         params[graphql.QueryParam],
		OperationName: params[graphql.OperationNameParam],
	}
	var err error
	request.Variables, err = marshalVariables(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(request)
}

// marshalVariables returns the variables' default values as a JSON object or
// nil if the operation defines no variables.
func marshalVariables(doc *graphql.Document) (json.RawMessage, error) {
	defs := doc.Operation().VariableDefinitions()
	if len(defs) == 0 {
		return nil, nil
	}
	fields := make([]graphql.ObjectField, 0, len(defs))
	for _, def := range defs {
		fields = append(fields, graphql.ObjectField{Name: def.Key, Value: def.DefaultValue})
	}
	obj, err := graphql.Object(fields...)
	if err != nil {
		return nil, xerrors.Errorf("variables: %w", err)
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, xerrors.Errorf("variables: %w", err)
	}
	return data, nil
}

// Parse parses a GraphQL HTTP request. If an error is returned, StatusCode
// will return the proper HTTP status code to use.
//
// Request methods may be GET, HEAD, or POST. If the method is not one of these,
// then an error is returned that will make StatusCode return
// http.StatusMethodNotAllowed. GET and HEAD requests must carry a query
// operation; the query text is parsed to check this.
func Parse(r *http.Request) (Request, error) {
	request := Request{
		Query: r.URL.Query().Get(graphql.QueryParam),
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if v := r.URL.Query().Get(graphql.VariablesParam); v != "" {
			if !json.Valid([]byte(v)) {
				return Request{}, &httpError{
					msg:  "parse graphql request: variables are not valid JSON",
					code: http.StatusBadRequest,
				}
			}
			request.Variables = json.RawMessage(v)
		}
		request.OperationName = r.URL.Query().Get(graphql.OperationNameParam)
		isQuery, err := isQueryOperation(request.Query, request.OperationName)
		if err != nil {
			return Request{}, &httpError{
				msg:   "parse graphql request: ",
				code:  http.StatusBadRequest,
				cause: err,
			}
		}
		if !isQuery {
			return Request{}, &httpError{
				msg:  "parse graphql request: GET requests must be queries",
				code: http.StatusBadRequest,
			}
		}
	case http.MethodPost:
		rawContentType := r.Header.Get("Content-Type")
		contentType, _, err := mime.ParseMediaType(rawContentType)
		if err != nil {
			return Request{}, &httpError{
				msg:  "parse graphql request: invalid content type: " + rawContentType,
				code: http.StatusUnsupportedMediaType,
			}
		}
		switch contentType {
		case "application/json":
			if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
				return Request{}, &httpError{
					msg:   "parse graphql request: ",
					code:  http.StatusBadRequest,
					cause: err,
				}
			}
		case "application/x-www-form-urlencoded":
			request.Query = r.FormValue(graphql.QueryParam)
			request.OperationName = r.FormValue(graphql.OperationNameParam)
			if v := r.FormValue(graphql.VariablesParam); v != "" {
				if !json.Valid([]byte(v)) {
					return Request{}, &httpError{
						msg:  "parse graphql request: variables are not valid JSON",
						code: http.StatusBadRequest,
					}
				}
				request.Variables = json.RawMessage(v)
			}
		case "application/graphql":
			data, err := ioutil.ReadAll(r.Body)
			if err != nil {
				return Request{}, &httpError{
					msg:   "parse graphql request: ",
					code:  http.StatusBadRequest,
					cause: err,
				}
			}
			if len(data) > 0 {
				request.Query = string(data)
			}
		default:
			return Request{}, &httpError{
				msg:  "parse graphql request: unrecognized content type: " + contentType,
				code: http.StatusUnsupportedMediaType,
			}
		}
	default:
		return Request{}, &httpError{
			msg:  fmt.Sprintf("parse graphql request: method %s not allowed", r.Method),
			code: http.StatusMethodNotAllowed,
		}
	}
	return request, nil
}

// isQueryOperation reports whether the operation selected by name in the
// query text is a query. An empty name selects the document's only operation.
func isQueryOperation(query, name string) (bool, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return false, err
	}
	if name == "" {
		if len(doc.Operations) != 1 {
			return false, xerrors.Errorf("operation name required for a document with %d operations", len(doc.Operations))
		}
		return doc.Operations[0].Operation == ast.Query, nil
	}
	op := doc.Operations.ForName(name)
	if op == nil {
		return false, xerrors.Errorf("no operation named %q", name)
	}
	return op.Operation == ast.Query, nil
}

type httpError struct {
	msg   string
	code  int
	cause error
}

func (e *httpError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status code an error indicates.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *httpError
	if !xerrors.As(err, &e) {
		return http.StatusInternalServerError
	}
	return e.code
}
