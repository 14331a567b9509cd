package links

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// GroupLinkPrefix is the only accepted scheme+host for links handed to
// /protect. Anything else is rejected before touching the store.
const GroupLinkPrefix = "https://t.me/"

const (
	ErrValidationInvalidRequest = "ERR_VALIDATION_INVALID_REQUEST"
	ErrValidationInvalidLink    = "ERR_VALIDATION_INVALID_LINK"
	ErrLinkNotFound             = "ERR_LINK_NOT_FOUND"
	ErrAuthForbidden            = "ERR_AUTH_FORBIDDEN"
	ErrInternal                 = "ERR_INTERNAL"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e APIError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// NewID mints an opaque link ID: a UUIDv4 encoded as unpadded URL-safe
// base64, so it survives both URL paths and Telegram /start payloads.
func NewID() string {
	return base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
}

// ValidateGroupLink checks that raw is a plausible t.me invite link.
func ValidateGroupLink(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return APIError{Code: ErrValidationInvalidLink, Message: "group link is required"}
	}
	if !strings.HasPrefix(raw, GroupLinkPrefix) {
		return APIError{Code: ErrValidationInvalidLink, Message: "group link must start with " + GroupLinkPrefix}
	}
	if raw == GroupLinkPrefix {
		return APIError{Code: ErrValidationInvalidLink, Message: "group link has no group name"}
	}
	return nil
}
