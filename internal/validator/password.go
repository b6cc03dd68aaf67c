package validator

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	msgPasswordMismatch = "The two password fields didn't match."
	msgPasswordCommon   = "This password is too common."
	msgPasswordNumeric  = "This password is entirely numeric."
)

//go:embed common_passwords.txt
var commonPasswordsRaw string

var commonPasswords = func() map[string]struct{} {
	m := map[string]struct{}{}
	for _, line := range strings.Split(commonPasswordsRaw, "\n") {
		line = strings.TrimSpace(strings.ToLower(line))
		if line != "" {
			m[line] = struct{}{}
		}
	}
	return m
}()

var nonWord = regexp.MustCompile(`\W+`)

// UserAttribute は類似チェックに使う値（ユーザー名・メールなど）
type UserAttribute struct {
	Name  string
	Value string
}

// PasswordPolicy はパスワード強度の判定。違反メッセージを返す（空ならOK）。
type PasswordPolicy func(password string, attrs ...UserAttribute) []string

type PolicyConfig struct {
	MinLength     int
	MaxSimilarity float64
}

// 最小文字数・よくあるパスワード・数字のみ・ユーザー情報との類似を拒否する
func NewStrengthPolicy(cfg PolicyConfig) PasswordPolicy {
	if cfg.MinLength <= 0 {
		cfg.MinLength = 8
	}
	if cfg.MaxSimilarity <= 0 {
		cfg.MaxSimilarity = 0.7
	}

	return func(password string, attrs ...UserAttribute) []string {
		var msgs []string

		for _, a := range attrs {
			if tooSimilar(password, a.Value, cfg.MaxSimilarity) {
				msgs = append(msgs, fmt.Sprintf("The password is too similar to the %s.", a.Name))
				break
			}
		}

		if n := utf8.RuneCountInString(password); n < cfg.MinLength {
			msgs = append(msgs, fmt.Sprintf("This password is too short. It must contain at least %d characters.", cfg.MinLength))
		}

		if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
			msgs = append(msgs, msgPasswordCommon)
		}

		if password != "" && isAllDigits(password) {
			msgs = append(msgs, msgPasswordNumeric)
		}

		return msgs
	}
}

// 値全体と、記号で区切った各部分のどちらかに似ていればtrue
func tooSimilar(password, value string, maxSimilarity float64) bool {
	if value == "" || password == "" {
		return false
	}
	pw := strings.ToLower(password)
	parts := append(nonWord.Split(value, -1), value)
	for _, part := range parts {
		part = strings.ToLower(part)
		if part == "" || exceedsLengthRatio(pw, part, maxSimilarity) {
			continue
		}
		if quickRatio(pw, part) >= maxSimilarity {
			return true
		}
	}
	return false
}

// パスワードが値よりずっと長いときは類似判定しない
func exceedsLengthRatio(password, value string, maxSimilarity float64) bool {
	pwLen := utf8.RuneCountInString(password)
	valLen := utf8.RuneCountInString(value)
	return pwLen >= 10*valLen && float64(valLen) < maxSimilarity/2*float64(pwLen)
}

// 共通する文字数（多重集合）から 2*M/(len(a)+len(b)) を出す
func quickRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	avail := map[rune]int{}
	for _, r := range rb {
		avail[r]++
	}
	matches := 0
	for _, r := range ra {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(total)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PasswordPair は「新パスワード＋確認」の2項目を検証する。
// 登録・変更・再設定で同じものをラベル違いで使う。
type PasswordPair struct {
	First  FieldSpec
	Second FieldSpec
	Policy PasswordPolicy
}

func NewPasswordPair(first, second string, firstLabel, secondLabel string, policy PasswordPolicy) PasswordPair {
	return PasswordPair{
		First:  FieldSpec{Name: first, Label: firstLabel, Placeholder: firstLabel, Required: true},
		Second: FieldSpec{Name: second, Label: secondLabel, Placeholder: secondLabel, Required: true},
		Policy: policy,
	}
}

// 一致チェックと強度チェックを両方行う（不一致でも強度は見る）。
// 不一致は両方のフィールドに載せる。
func (p PasswordPair) Validate(in Input, errs *ValidationError, attrs ...UserAttribute) string {
	fields := newFieldSet(p.First, p.Second).clean(in, errs)
	first, second := fields[p.First.Name], fields[p.Second.Name]

	if first != "" && second != "" && first != second {
		errs.Add(p.First.Name, msgPasswordMismatch)
		errs.Add(p.Second.Name, msgPasswordMismatch)
	}

	if first != "" && p.Policy != nil {
		for _, msg := range p.Policy(first, attrs...) {
			errs.Add(p.First.Name, msg)
		}
	}

	return first
}
