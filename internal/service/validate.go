package service

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxPathLength = 64

var (
	pathPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	whitespace  = regexp.MustCompile(`\s+`)

	// 与路由冲突的保留路径
	reservedPaths = map[string]struct{}{
		"api":     {},
		"auth":    {},
		"health":  {},
		"metrics": {},
		"swagger": {},
		"static":  {},
	}

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("shortpath", func(fl validator.FieldLevel) bool {
		return ValidPath(fl.Field().String())
	})
	_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return validHTTPURL(fl.Field().String())
	})
	return v
}

// NormalizePath 去掉首尾空白，内部连续空白替换为 "-"
func NormalizePath(path string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(path), "-")
}

// ValidPath 短路径只允许字母、数字、"-" 和 "_"，且不能与保留路由冲突
func ValidPath(path string) bool {
	if path == "" || len(path) > maxPathLength || !pathPattern.MatchString(path) {
		return false
	}
	_, reserved := reservedPaths[strings.ToLower(path)]
	return !reserved
}

func validHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validateStruct 把 validator 的错误转换为 ValidationError
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	return &ValidationError{Field: fe.Field(), Message: messageFor(fe)}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	case "httpurl":
		return "must be a valid http(s) URL"
	case "shortpath":
		return "may only contain letters, digits, '-' and '_' and must not be a reserved path"
	default:
		return "is invalid"
	}
}
