package kestrel

import (
	"mime"
	"strconv"
	"strings"
)

// ErrorRenderer serializes a structured error into a wire format. The err
// argument is the error as returned by the hook or handler, so renderers can
// detect payload overrides (Dicter, XMLer) on types that embed *Error.
type ErrorRenderer interface {
	ContentType() string
	Render(err error, e *Error) []byte
}

// jsonErrorRenderer is the default renderer.
type jsonErrorRenderer struct{}

func (jsonErrorRenderer) ContentType() string { return "application/json" }

func (jsonErrorRenderer) Render(err error, e *Error) []byte {
	if d, ok := err.(Dicter); ok {
		return EncodeDict(d.ToDict())
	}
	return e.ToJSON()
}

type xmlErrorRenderer struct{}

func (xmlErrorRenderer) ContentType() string { return "application/xml" }

func (xmlErrorRenderer) Render(err error, e *Error) []byte {
	if x, ok := err.(XMLer); ok {
		return x.ToXML()
	}
	return e.ToXML()
}

// rendererRegistry holds all registered error renderers. Index 0 is always
// JSON (the default).
type rendererRegistry struct {
	renderers []ErrorRenderer
}

func newRendererRegistry(user []ErrorRenderer) *rendererRegistry {
	rr := &rendererRegistry{
		renderers: make([]ErrorRenderer, 0, 2+len(user)),
	}
	rr.renderers = append(rr.renderers, jsonErrorRenderer{}, xmlErrorRenderer{})
	rr.renderers = append(rr.renderers, user...)
	return rr
}

// negotiate picks a renderer based on the Accept header value. Empty and
// wildcard accepts get JSON; an explicit Accept with no match also falls
// back to JSON, since an error response must always have some body format.
func (rr *rendererRegistry) negotiate(accept string) ErrorRenderer {
	if accept == "" {
		return rr.renderers[0]
	}

	type candidate struct {
		renderer ErrorRenderer
		quality  float64
	}

	var best candidate
	best.quality = -1

	for part := range strings.SplitSeq(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		q := 1.0
		if qs, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(qs, 64); err == nil {
				q = parsed
			}
		}

		if q <= best.quality {
			continue
		}

		if mediaType == "*/*" {
			best = candidate{renderer: rr.renderers[0], quality: q}
			continue
		}

		for _, r := range rr.renderers {
			if r.ContentType() == mediaType {
				best = candidate{renderer: r, quality: q}
				break
			}
		}
	}

	if best.renderer == nil {
		return rr.renderers[0]
	}
	return best.renderer
}
