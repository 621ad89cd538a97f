package kestrel

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// DefaultLinkText is the link text used when WithLink is given without
// WithLinkText.
const DefaultLinkText = "Documentation related to this error"

// StatusCoder is implemented by errors or responses that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// Representation controls whether an Error produces a response body.
type Representation int

const (
	// ReprAlways always renders a body. This is the zero value.
	ReprAlways Representation = iota

	// ReprNever suppresses the body entirely.
	ReprNever

	// ReprIfDescription renders a body only when Description is set.
	ReprIfDescription
)

// Header is a single response header. Order and case are preserved when the
// error is written to the wire.
type Header struct {
	Name  string
	Value string
}

// Link points the client at documentation for the error. Rel is always "help".
type Link struct {
	Text string
	Href string
	Rel  string
}

// Error is a structured HTTP error. Return one from a hook or handler to
// have the router write a formatted error response and stop dispatch.
//
// JSON and XML representations are supported out of the box. To customize
// the payload without reimplementing the encoding, define a type that embeds
// *Error and overrides ToDict — the renderer encodes whatever Dict it gets.
type Error struct {
	Status         string // status line, e.g. "404 Not Found"
	Title          string // defaults to Status
	Description    string
	Headers        []Header
	Link           *Link
	Code           *int // application-defined code
	Representation Representation
}

// ErrorOption configures an Error at construction time.
type ErrorOption func(*Error)

// WithTitle sets a human-friendly error title.
func WithTitle(title string) ErrorOption {
	return func(e *Error) {
		e.Title = title
	}
}

// WithDescription sets a human-friendly description of the error.
func WithDescription(description string) ErrorOption {
	return func(e *Error) {
		e.Description = description
	}
}

// WithHeader appends a header to set on the error response. Error headers
// take precedence over anything already set on the response.
func WithHeader(name, value string) ErrorOption {
	return func(e *Error) {
		e.Headers = append(e.Headers, Header{Name: name, Value: value})
	}
}

// WithCode sets an application-defined error code that clients can reference
// in support requests.
func WithCode(code int) ErrorOption {
	return func(e *Error) {
		c := code
		e.Code = &c
	}
}

// WithLink attaches a documentation link. Non-ASCII and unsafe characters in
// href are percent-encoded.
func WithLink(href string) ErrorOption {
	return func(e *Error) {
		if e.Link == nil {
			e.Link = &Link{Text: DefaultLinkText, Rel: "help"}
		}
		e.Link.Href = encodeURI(href)
	}
}

// WithLinkText overrides the friendly text of the documentation link.
func WithLinkText(text string) ErrorOption {
	return func(e *Error) {
		if e.Link == nil {
			e.Link = &Link{Rel: "help"}
		}
		e.Link.Text = text
	}
}

// WithRepresentation sets the body-rendering policy for the error.
func WithRepresentation(r Representation) ErrorOption {
	return func(e *Error) {
		e.Representation = r
	}
}

// NewError constructs a structured error from a status line such as
// "400 Bad Request". Title defaults to the status line.
func NewError(status string, opts ...ErrorOption) *Error {
	e := &Error{Status: status}
	for _, opt := range opts {
		opt(e)
	}
	if e.Title == "" {
		e.Title = status
	}
	// A link needs an href; WithLinkText alone does not produce one.
	if e.Link != nil && e.Link.Href == "" {
		e.Link = nil
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Description != "" {
		return e.Title + ": " + e.Description
	}
	return e.Title
}

// StatusCode returns the numeric code parsed from the status line, or 500 if
// the line does not start with one.
func (e *Error) StatusCode() int {
	code, _, _ := strings.Cut(e.Status, " ")
	n, err := strconv.Atoi(code)
	if err != nil {
		return http.StatusInternalServerError
	}
	return n
}

// HasRepresentation reports whether the error produces a response body.
func (e *Error) HasRepresentation() bool {
	switch e.Representation {
	case ReprNever:
		return false
	case ReprIfDescription:
		return e.Description != ""
	default:
		return true
	}
}

// ToDict returns the error's wire fields in fixed order: title, then
// description, code, and link when present. Absent fields are omitted, never
// emitted as null.
func (e *Error) ToDict() Dict {
	var d Dict
	d.Set("title", e.Title)
	if e.Description != "" {
		d.Set("description", e.Description)
	}
	if e.Code != nil {
		d.Set("code", *e.Code)
	}
	if e.Link != nil {
		var link Dict
		link.Set("text", e.Link.Text)
		link.Set("href", e.Link.Href)
		link.Set("rel", e.Link.Rel)
		d.Set("link", &link)
	}
	return d
}

// ToJSON returns the JSON representation of the error. Field order follows
// ToDict and non-ASCII characters are emitted literally.
func (e *Error) ToJSON() []byte {
	return EncodeDict(e.ToDict())
}

type xmlLink struct {
	Text string `xml:"text"`
	Href string `xml:"href"`
	Rel  string `xml:"rel"`
}

type xmlError struct {
	XMLName     xml.Name `xml:"error"`
	Title       string   `xml:"title"`
	Description string   `xml:"description,omitempty"`
	Code        *int     `xml:"code,omitempty"`
	Link        *xmlLink `xml:"link,omitempty"`
}

// ToXML returns the XML representation of the error, prefixed with a UTF-8
// XML declaration.
func (e *Error) ToXML() []byte {
	doc := xmlError{
		Title:       e.Title,
		Description: e.Description,
		Code:        e.Code,
	}
	if e.Link != nil {
		doc.Link = &xmlLink{Text: e.Link.Text, Href: e.Link.Href, Rel: e.Link.Rel}
	}

	// A struct of strings and ints cannot fail to marshal.
	body, _ := xml.Marshal(doc)
	return append([]byte(`<?xml version="1.0" encoding="UTF-8"?>`), body...)
}

// statusLine formats a numeric code as a status line using the standard
// reason phrase.
func statusLine(code int) string {
	return strconv.Itoa(code) + " " + http.StatusText(code)
}

// BadRequest returns a 400 error. Empty title or description fall back to
// the defaults.
func BadRequest(title, description string) *Error {
	var opts []ErrorOption
	if title != "" {
		opts = append(opts, WithTitle(title))
	}
	if description != "" {
		opts = append(opts, WithDescription(description))
	}
	return NewError(statusLine(http.StatusBadRequest), opts...)
}

// NotFound returns a 404 error that renders a body only when a description
// is added.
func NotFound() *Error {
	return NewError(statusLine(http.StatusNotFound),
		WithRepresentation(ReprIfDescription))
}

// MethodNotAllowed returns a body-less 405 error with an Allow header listing
// the permitted methods.
func MethodNotAllowed(allowed []string) *Error {
	return NewError(statusLine(http.StatusMethodNotAllowed),
		WithHeader("Allow", strings.Join(allowed, ", ")),
		WithRepresentation(ReprNever))
}

// TooManyRequests returns a 429 error with a Retry-After header.
func TooManyRequests(description, retryAfter string) *Error {
	return NewError(statusLine(http.StatusTooManyRequests),
		WithTitle("Too Many Requests"),
		WithDescription(description),
		WithHeader("Retry-After", retryAfter))
}

// UnavailableForLegalReasons returns a 451 error.
func UnavailableForLegalReasons(description string) *Error {
	return NewError(statusLine(http.StatusUnavailableForLegalReasons),
		WithDescription(description))
}

// InternalServerError returns a 500 error.
func InternalServerError(description string) *Error {
	return NewError(statusLine(http.StatusInternalServerError),
		WithDescription(description))
}

// ErrorStatus extracts the HTTP status code from an error. Returns
// http.StatusInternalServerError if the error does not implement StatusCoder.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
