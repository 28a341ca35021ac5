// Package imageref classifies the image payloads a comparison request carries:
// an http(s) reference, a data URI, or a bare base64 string.
package imageref

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"
)

type Kind string

const (
	KindURL     Kind = "url"
	KindDataURI Kind = "data-uri"
	KindBase64  Kind = "base64"
)

const defaultMediaType = "image/png"

// Ref is a parsed image payload. For KindURL only URL and SourceDomain are set;
// otherwise MediaType and Data (base64, no prefix) are.
type Ref struct {
	Kind         Kind
	URL          string
	SourceDomain string
	MediaType    string
	Data         string
}

var ErrEmpty = errString("image payload is empty")

type errString string

func (e errString) Error() string { return string(e) }

// Parse classifies raw. It does not check that the payload decodes to an
// image; the backend rejects what it cannot read.
func Parse(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, ErrEmpty
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Ref{}, fmt.Errorf("parse image url: %w", err)
		}
		return Ref{Kind: KindURL, URL: raw, SourceDomain: registrable(u.Hostname())}, nil
	case strings.HasPrefix(lower, "data:"):
		header, data, ok := strings.Cut(raw[len("data:"):], ",")
		if !ok {
			return Ref{}, fmt.Errorf("data uri has no payload")
		}
		params := strings.Split(header, ";")
		mediaType := strings.TrimSpace(params[0])
		if mediaType == "" {
			mediaType = defaultMediaType
		}
		if !strings.EqualFold(params[len(params)-1], "base64") {
			// Plain data URIs carry percent-encoded bytes; Data is always base64.
			plain, err := url.PathUnescape(data)
			if err != nil {
				return Ref{}, fmt.Errorf("decode data uri payload: %w", err)
			}
			data = base64.StdEncoding.EncodeToString([]byte(plain))
		}
		return Ref{Kind: KindDataURI, MediaType: mediaType, Data: data}, nil
	default:
		return Ref{Kind: KindBase64, MediaType: sniff(raw), Data: raw}, nil
	}
}

// FromFile reads a local image and encodes it as an inline payload.
func FromFile(path string) (Ref, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Ref{}, err
	}
	if len(b) == 0 {
		return Ref{}, ErrEmpty
	}
	return Ref{
		Kind:      KindDataURI,
		MediaType: http.DetectContentType(b),
		Data:      base64.StdEncoding.EncodeToString(b),
	}, nil
}

// String returns the payload in the form an OpenAI-style image_url accepts.
func (r Ref) String() string {
	if r.Kind == KindURL {
		return r.URL
	}
	return "data:" + r.MediaType + ";base64," + r.Data
}

// Describe is a short loggable description that never includes the payload.
func (r Ref) Describe() string {
	if r.Kind == KindURL {
		return fmt.Sprintf("url domain=%s", r.SourceDomain)
	}
	return fmt.Sprintf("%s media_type=%s size=%d", r.Kind, r.MediaType, len(r.Data))
}

func registrable(host string) string {
	if host == "" {
		return ""
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		return strings.ToLower(host)
	}
	return d
}

func sniff(b64 string) string {
	// 512 bytes of content need at most 684 base64 characters.
	head := b64
	if len(head) > 684 {
		head = head[:684]
	}
	head = head[:len(head)-len(head)%4]
	b, err := base64.StdEncoding.DecodeString(head)
	if err != nil || len(b) == 0 {
		return defaultMediaType
	}
	mt := http.DetectContentType(b)
	if !strings.HasPrefix(mt, "image/") {
		return defaultMediaType
	}
	return mt
}
