package server

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/sandeepkv93/todoui/internal/model"
)

var (
	setupValidation sync.Once
	translator      ut.Translator
	validationErr   error
)

// registerValidation adds the todo rules to gin's shared validator.
func registerValidation() error {
	setupValidation.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validationErr = errors.New("server: gin validator is not go-playground/validator")
			return
		}
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
			validationErr = err
			return
		}
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			validationErr = err
			return
		}
		if err := v.RegisterValidation("todostatus", validTodoStatus); err != nil {
			validationErr = err
			return
		}
		validationErr = addTranslations(v)
	})
	return validationErr
}

func validTodoStatus(fl validator.FieldLevel) bool {
	return model.Status(fl.Field().String()).IsValid()
}

func addTranslations(v *validator.Validate) error {
	if err := v.RegisterTranslation("notblank", translator, func(ut ut.Translator) error {
		return ut.Add("notblank", "{0} must not be blank", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("notblank", fieldName(fe))
		return t
	}); err != nil {
		return err
	}
	return v.RegisterTranslation("todostatus", translator, func(ut ut.Translator) error {
		return ut.Add("todostatus", "{0} must be pending or completed", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("todostatus", fieldName(fe))
		return t
	})
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
}

// validationMessage flattens binding errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Translate(translator))
	}
	return strings.Join(parts, "; ")
}
