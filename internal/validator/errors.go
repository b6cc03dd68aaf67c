package validator

import (
	"sort"
	"strings"
)

// フォーム入力。キーはフィールド名
type Input map[string]string

// ValidationError はフィールドごとのエラーメッセージ（順序つき）を持つ。
// 最初の1件で止めず、違反したフィールドをすべて載せる。
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field string, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// エラーが無ければnil（*ValidationErrorのnilをerrorに入れない）
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
