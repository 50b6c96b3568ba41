package store

import (
	"errors"
	"strings"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

const (
	MsgAllFieldsRequired = "All fields are required"
	MsgInvalidCategory   = "Please select a valid category"
	MsgInvalidDate       = "Date must be in YYYY-MM-DD format"
	MsgImageOnly         = "Only image files are allowed"
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).Valid()
	})

	return v
}

// validateCreate returns the user-facing message of the first problem found.
func (s *Store) validateCreate(info *model.EventCreate) (string, bool) {
	if info == nil {
		return MsgAllFieldsRequired, false
	}

	if err := s.validate.Struct(info); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			s.logger.Errorw("create payload validation failed", "err", err)
			return MsgAllFieldsRequired, false
		}

		msg := ""
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				return MsgAllFieldsRequired, false
			case "category":
				msg = MsgInvalidCategory
			case "datetime":
				if msg == "" {
					msg = MsgInvalidDate
				}
			}
		}
		if msg == "" {
			msg = MsgAllFieldsRequired
		}
		return msg, false
	}

	if len(info.Image.Content) == 0 {
		return MsgAllFieldsRequired, false
	}

	if !strings.HasPrefix(mimetype.Detect(info.Image.Content).String(), "image/") {
		return MsgImageOnly, false
	}

	return "", true
}
