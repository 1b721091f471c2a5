// Package validator checks request payloads against the fixed API schemas.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"catalog-service/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// ImageContentTypes is the set of MIME types accepted for album covers.
var ImageContentTypes = map[string]struct{}{
	"image/apng": {},
	"image/avif": {},
	"image/gif":  {},
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func New() *Validator {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(v.now().Year())
	})

	return v
}

func (v *Validator) ValidateSongPayload(p SongPayload) error { return v.check(p) }

func (v *Validator) ValidateAlbumPayload(p AlbumPayload) error { return v.check(p) }

func (v *Validator) ValidatePlaylistPayload(p PlaylistPayload) error { return v.check(p) }

func (v *Validator) ValidatePlaylistSongPayload(p PlaylistSongPayload) error { return v.check(p) }

func (v *Validator) ValidateCollaborationPayload(p CollaborationPayload) error { return v.check(p) }

func (v *Validator) ValidateUserPayload(p UserPayload) error { return v.check(p) }

func (v *Validator) ValidateLoginPayload(p LoginPayload) error { return v.check(p) }

func (v *Validator) ValidateRefreshTokenPayload(p RefreshTokenPayload) error { return v.check(p) }

// ValidateImageHeaders accepts only the MIME types in ImageContentTypes.
func (v *Validator) ValidateImageHeaders(contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if _, ok := ImageContentTypes[ct]; !ok {
		return apperror.Validation(fmt.Sprintf("%q must be one of the allowed image types", "content-type"))
	}
	return nil
}

func (v *Validator) check(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Validation("invalid payload").Wrap(err)
	}
	return apperror.Validation(v.message(fieldErrs[0])).Wrap(err)
}

func (v *Validator) message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
	case "notfuture":
		return fmt.Sprintf("%q must be less than or equal to %d", field, v.now().Year())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
