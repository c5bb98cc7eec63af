// Package reqcontext extracts the per-request commerce context: the
// locale and customer segment a catalog query runs under. Clients declare
// it in the Commerce-Context header; requests without one fall back to the
// service's configured defaults.
package reqcontext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dunglas/httpsfv"
	"golang.org/x/mod/semver"

	"catalog-proxy/internal/model"
)

// Header is the request header carrying the commerce context.
const Header = "Commerce-Context"

// CurrentVersion is the newest context schema version this service speaks.
// Clients may pin an older major version; newer majors are rejected.
const CurrentVersion = "1.0.0"

// ParseHeader decodes a Commerce-Context header into a query context.
// The header is an RFC 8941 Dictionary:
//
//	language=de, country=DE, currency=EUR, segment=b2b, version="1.0.0"
//
// Every key is optional; unknown keys are ignored. A declared version must
// be valid semver within the supported major.
func ParseHeader(header string) (model.QueryContext, error) {
	var qc model.QueryContext

	header = strings.TrimSpace(header)
	if header == "" {
		return qc, errors.New("empty Commerce-Context header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return qc, fmt.Errorf("invalid Commerce-Context header: %w", err)
	}

	qc.Language = dictString(dict, "language")
	qc.Country = dictString(dict, "country")
	qc.Currency = dictString(dict, "currency")
	qc.Segment = dictString(dict, "segment")

	if version := dictString(dict, "version"); version != "" {
		if err := checkVersion(version); err != nil {
			return model.QueryContext{}, err
		}
	}

	return qc, nil
}

// dictString reads a string or token member from a parsed dictionary.
func dictString(dict *httpsfv.Dictionary, key string) string {
	member, ok := dict.Get(key)
	if !ok {
		return ""
	}
	item, ok := member.(httpsfv.Item)
	if !ok {
		return ""
	}
	switch v := item.Value.(type) {
	case string:
		return v
	case httpsfv.Token:
		return string(v)
	default:
		return ""
	}
}

// checkVersion validates a declared context version against the supported
// major.
func checkVersion(version string) error {
	v := normalizeVersion(version)
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid context version %q", version)
	}
	if semver.Major(v) != semver.Major(normalizeVersion(CurrentVersion)) {
		return fmt.Errorf("unsupported context version %q (current %s)", version, CurrentVersion)
	}
	return nil
}

// normalizeVersion adds the "v" prefix semver parsing requires.
func normalizeVersion(v string) string {
	if v == "" || v[0] == 'v' {
		return v
	}
	return "v" + v
}
