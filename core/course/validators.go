package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/coursely/coursely/core"
)

var (
	sortOptionTag  = "sortoption"
	sortOptionText = "must be one of featured, rating, students, price-low or price-high"

	levelTag  = "courselevel"
	levelText = "must be one of All, Beginner, Intermediate or Advanced"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(sortOptionTag, func(fl validator.FieldLevel) bool {
		return IsSortOption(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, sortOptionTag, sortOptionText)

	_ = validate.RegisterValidation(levelTag, func(fl validator.FieldLevel) bool {
		return IsLevel(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, levelTag, levelText)
}
