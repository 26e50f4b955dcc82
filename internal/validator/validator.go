package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// classCodePattern is year (1-2 digits), group letter A-H and shift
// (M morning, T afternoon, N night), e.g. "1B-M".
var classCodePattern = regexp.MustCompile(`^[0-9]{1,2}[A-H]-[MTN]$`)

var (
	once     sync.Once
	validate *govalidator.Validate
	trans    ut.Translator
	// ginTrans translates errors raised by Gin's binding engine.
	ginTrans ut.Translator
)

// FieldIssue is a single violated field and the reason it was rejected.
type FieldIssue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ValidationError is returned when input fails field-level constraints.
// No partially built value ever accompanies it.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", e.Issues[0].Path, e.Issues[0].Reason)
	}
	return fmt.Sprintf("validation failed: %d issues", len(e.Issues))
}

// Fields returns the issues keyed by field path.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Issues))
	for _, issue := range e.Issues {
		fields[issue.Path] = issue.Reason
	}
	return fields
}

// Invalid builds a ValidationError for a single path. Used for checks that
// struct tags cannot express, such as an explicit null on a required field.
func Invalid(path, reason string) *ValidationError {
	return &ValidationError{Issues: []FieldIssue{{Path: path, Reason: reason}}}
}

// Setup prepares the shared validation engine and registers the same
// tag-name and translation rules on Gin's binding engine.
// Call once during application startup.
func Setup() {
	engine()
	if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
		ginTrans = newTranslator()
		configure(v, ginTrans)
	}
}

// Struct validates v against its `validate` tags.
// Returns nil or a *ValidationError listing every violated field.
func Struct(v interface{}) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	issues := make([]FieldIssue, 0, len(ve))
	for _, fe := range ve {
		issues = append(issues, FieldIssue{
			Path:   fieldPath(fe.Namespace()),
			Reason: fe.Translate(trans),
		})
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return &ValidationError{Issues: issues}
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	var own *ValidationError
	if errors.As(err, &own) {
		return own.Fields()
	}

	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(ginTrans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

func engine() *govalidator.Validate {
	once.Do(func() {
		trans = newTranslator()
		validate = govalidator.New(govalidator.WithRequiredStructEnabled())
		configure(validate, trans)
	})
	return validate
}

// newTranslator returns a fresh English translator. Each engine gets its
// own, since a translator accepts every message key only once.
func newTranslator() ut.Translator {
	enLocale := en.New()
	t, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	return t
}

func configure(v *govalidator.Validate, t ut.Translator) {
	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("classcode", func(fl govalidator.FieldLevel) bool {
		return classCodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl govalidator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	})

	_ = en_translations.RegisterDefaultTranslations(v, t)
	registerTranslation(v, t, "classcode", "{0} must look like 1B-M (year, group A-H, shift M/T/N)")
	registerTranslation(v, t, "isodate", "{0} must be an ISO-8601 date-time")
}

func registerTranslation(v *govalidator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// fieldPath drops the root struct name from a validator namespace:
// "ParentInput.address[0].zipCode" becomes "address[0].zipCode".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
