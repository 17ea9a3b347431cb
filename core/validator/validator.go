package validator

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// validatorImpl 校验器实现
type validatorImpl struct {
	validator *validator.Validate
	trans     ut.Translator
}

// Validate 全局校验器实例
var (
	Validate Validator
	once     sync.Once
)

func init() {
	once.Do(func() {
		Validate = New()
	})
}

// New 创建新的校验器实例，错误消息使用英文翻译，字段名优先取 json 标签
func New(opts ...ValidationOption) Validator {
	v := &validatorImpl{
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}

	v.validator.RegisterTagNameFunc(jsonTagName)

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	if trans, found := uni.GetTranslator("en"); found {
		v.trans = trans
		_ = en_translations.RegisterDefaultTranslations(v.validator, trans)
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// jsonTagName 使用 json/mapstructure 标签名作为字段名
func jsonTagName(field reflect.StructField) string {
	for _, key := range []string{"json", "mapstructure"} {
		name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// Struct 校验结构体
func (v *validatorImpl) Struct(s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validator.Struct(s), "")
}

// StructCtx 带上下文校验结构体
func (v *validatorImpl) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validation target cannot be nil")
	}
	return v.translate(v.validator.StructCtx(ctx, s), "")
}

// Var 校验单个变量
func (v *validatorImpl) Var(name string, value any, tag string) error {
	return v.translate(v.validator.Var(value, tag), name)
}

// GetValidator 获取底层的validator实例
func (v *validatorImpl) GetValidator() *validator.Validate {
	return v.validator
}

// translate 将 validator.ValidationErrors 转换为带翻译消息的错误
func (v *validatorImpl) translate(err error, name string) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &validationErrorsImpl{}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		msg := fe.Error()
		if v.trans != nil {
			msg = fe.Translate(v.trans)
		}
		// Var 校验没有字段名，翻译结果以空字段名开头
		if field == "" && name != "" {
			field = name
			msg = name + msg
		}
		out.fieldErrors = append(out.fieldErrors, &fieldErrorImpl{field: field, tag: fe.Tag(), message: msg})
		messages = append(messages, msg)
	}
	out.message = strings.Join(messages, "; ")

	return out
}

// validationErrorsImpl 校验错误实现
type validationErrorsImpl struct {
	fieldErrors []FieldError
	message     string
}

func (ve *validationErrorsImpl) Error() string {
	return ve.message
}

func (ve *validationErrorsImpl) Errors() []FieldError {
	return ve.fieldErrors
}

// fieldErrorImpl 字段错误实现
type fieldErrorImpl struct {
	field   string
	tag     string
	message string
}

func (fe *fieldErrorImpl) Field() string   { return fe.field }
func (fe *fieldErrorImpl) Tag() string     { return fe.tag }
func (fe *fieldErrorImpl) Message() string { return fe.message }

// IsValidationError 检查是否为校验错误
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// HasFieldError 检查是否存在指定字段的错误
func HasFieldError(err error, field string) bool {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve.Errors() {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
