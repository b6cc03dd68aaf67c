package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

const (
	msgRequired = "This field is required."
	msgEmail    = "Enter a valid email address."
	msgUsername = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgSlug     = "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// 検証エンジンはパッケージで1つ（*playground.Validateは並行利用できる）
var engine = newEngine()

// FieldSpec は1フィールドの受け付けルール。
// 表示用のLabel/Placeholderもここに持たせ、任意のキー・値の袋は使わない。
type FieldSpec struct {
	Name        string
	Label       string
	Placeholder string
	Required    bool
	MaxLength   int
	Email       bool
	Username    bool
	Slug        bool
	// 空でなければこのどれか
	Choices []string
	// 前後の空白を落とす（パスワードでは使わない）
	Strip bool
}

// go-playground/validatorのタグ文字列に変換
func (f FieldSpec) rules() string {
	var rules []string
	if f.Required {
		rules = append(rules, "required")
	} else {
		rules = append(rules, "omitempty")
	}
	if f.MaxLength > 0 {
		rules = append(rules, fmt.Sprintf("max=%d", f.MaxLength))
	}
	if f.Email {
		rules = append(rules, "email")
	}
	if f.Username {
		rules = append(rules, "username")
	}
	if f.Slug {
		rules = append(rules, "slug")
	}
	if len(f.Choices) > 0 {
		rules = append(rules, "oneof="+strings.Join(f.Choices, " "))
	}
	return strings.Join(rules, ",")
}

func (f FieldSpec) message(fe playground.FieldError, value string) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", f.MaxLength, utf8.RuneCountInString(value))
	case "email":
		return msgEmail
	case "username":
		return msgUsername
	case "slug":
		return msgSlug
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", value)
	default:
		return "Enter a valid value."
	}
}

// fieldSet は FieldSpec の並び
type fieldSet struct {
	specs []FieldSpec
}

func newEngine() *playground.Validate {
	v := playground.New()
	mustRegister(v, "username", usernamePattern)
	mustRegister(v, "slug", slugPattern)
	return v
}

func mustRegister(v *playground.Validate, tag string, pattern *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl playground.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}
}

func newFieldSet(specs ...FieldSpec) fieldSet {
	return fieldSet{specs: specs}
}

// 全フィールドを検証し、整形済みの値を返す。エラーはerrsに積む。
func (s fieldSet) clean(in Input, errs *ValidationError) map[string]string {
	out := make(map[string]string, len(s.specs))
	for _, f := range s.specs {
		value := in[f.Name]
		if f.Strip {
			value = strings.TrimSpace(value)
		}
		out[f.Name] = value

		if err := engine.Var(value, f.rules()); err != nil {
			var verrs playground.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					errs.Add(f.Name, f.message(fe, value))
				}
				continue
			}
			errs.Add(f.Name, "Enter a valid value.")
		}
	}
	return out
}
