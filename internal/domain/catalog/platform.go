package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// PlatformTag identifies the store platform a payload came from
// ---------------------------------------------------------------------------

// PlatformTag identifies a supported store platform
type PlatformTag string

const (
	// PlatformVTEX is the catalog-style platform (products with nested items and sellers)
	PlatformVTEX PlatformTag = "vtex"
	// PlatformShopify is the storefront-style platform (products with variants)
	PlatformShopify PlatformTag = "shopify"
)

// SupportedPlatforms lists every platform tag with a row adapter
var SupportedPlatforms = []PlatformTag{PlatformVTEX, PlatformShopify}

// ErrUnsupportedPlatform is matched by every UnsupportedPlatformError
var ErrUnsupportedPlatform = errors.New("catalog: unsupported platform")

// UnsupportedPlatformError reports a platform tag that has no adapter or client
type UnsupportedPlatformError struct {
	Tag string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("catalog: unsupported platform %q", e.Tag)
}

// Is makes errors.Is(err, ErrUnsupportedPlatform) succeed
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// ParsePlatformTag normalizes and validates a platform tag
func ParsePlatformTag(s string) (PlatformTag, error) {
	tag := PlatformTag(strings.ToLower(strings.TrimSpace(s)))
	if !tag.IsValid() {
		return "", &UnsupportedPlatformError{Tag: s}
	}
	return tag, nil
}

// IsValid returns true if the tag is a supported platform
func (t PlatformTag) IsValid() bool {
	switch t {
	case PlatformVTEX, PlatformShopify:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformTag
func (t PlatformTag) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the platform
func (t PlatformTag) DisplayName() string {
	switch t {
	case PlatformVTEX:
		return "VTEX"
	case PlatformShopify:
		return "Shopify"
	default:
		return string(t)
	}
}
