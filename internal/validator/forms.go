package validator

import "strings"

const msgOldPasswordIncorrect = "Your old password was entered incorrectly. Please enter it again."

// ---- 会員登録 ----

type Registration struct {
	Username string
	Email    string
	Password string
}

type RegistrationValidator struct {
	fields fieldSet
	pair   PasswordPair
}

func NewRegistrationValidator(policy PasswordPolicy) *RegistrationValidator {
	return &RegistrationValidator{
		fields: newFieldSet(
			FieldSpec{Name: "username", Label: "Username", Placeholder: "Username", Required: true, MaxLength: 150, Username: true, Strip: true},
			FieldSpec{Name: "email", Label: "Email", Placeholder: "Email address", Required: true, MaxLength: 254, Email: true, Strip: true},
		),
		pair: NewPasswordPair("password1", "password2", "Password", "Password confirmation", policy),
	}
}

func (v *RegistrationValidator) Validate(in Input) (Registration, error) {
	errs := newValidationError()
	f := v.fields.clean(in, errs)

	pw := v.pair.Validate(in, errs,
		UserAttribute{Name: "username", Value: f["username"]},
		UserAttribute{Name: "email address", Value: f["email"]},
	)

	if err := errs.orNil(); err != nil {
		return Registration{}, err
	}
	return Registration{Username: f["username"], Email: strings.ToLower(f["email"]), Password: pw}, nil
}

// ---- ログイン（照合はしない。有無と形だけ） ----

type Login struct {
	Username string
	Password string
}

type LoginValidator struct {
	fields fieldSet
}

func NewLoginValidator() *LoginValidator {
	return &LoginValidator{fields: newFieldSet(
		FieldSpec{Name: "username", Label: "Username", Required: true, MaxLength: 150, Strip: true},
		FieldSpec{Name: "password", Label: "Password", Required: true},
	)}
}

func (v *LoginValidator) Validate(in Input) (Login, error) {
	errs := newValidationError()
	f := v.fields.clean(in, errs)
	if err := errs.orNil(); err != nil {
		return Login{}, err
	}
	return Login{Username: f["username"], Password: f["password"]}, nil
}

// ---- パスワード変更 ----

type PasswordChange struct {
	NewPassword string
}

type PasswordChangeValidator struct {
	old  fieldSet
	pair PasswordPair
}

func NewPasswordChangeValidator(policy PasswordPolicy) *PasswordChangeValidator {
	return &PasswordChangeValidator{
		old:  newFieldSet(FieldSpec{Name: "old_password", Label: "Old password", Placeholder: "Password", Required: true}),
		pair: NewPasswordPair("new_password1", "new_password2", "New password", "New password confirmation", policy),
	}
}

// checkOld は現在のパスワードの照合（認証側が提供する）
func (v *PasswordChangeValidator) Validate(in Input, checkOld func(plain string) bool, attrs ...UserAttribute) (PasswordChange, error) {
	errs := newValidationError()

	f := v.old.clean(in, errs)
	if old := f["old_password"]; old != "" && (checkOld == nil || !checkOld(old)) {
		errs.Add("old_password", msgOldPasswordIncorrect)
	}

	pw := v.pair.Validate(in, errs, attrs...)

	if err := errs.orNil(); err != nil {
		return PasswordChange{}, err
	}
	return PasswordChange{NewPassword: pw}, nil
}

// ---- パスワード再設定の申請 ----

type PasswordResetRequest struct {
	Email string
}

type PasswordResetRequestValidator struct {
	fields fieldSet
}

func NewPasswordResetRequestValidator() *PasswordResetRequestValidator {
	return &PasswordResetRequestValidator{fields: newFieldSet(
		FieldSpec{Name: "email", Label: "Email", Required: true, MaxLength: 254, Email: true, Strip: true},
	)}
}

func (v *PasswordResetRequestValidator) Validate(in Input) (PasswordResetRequest, error) {
	errs := newValidationError()
	f := v.fields.clean(in, errs)
	if err := errs.orNil(); err != nil {
		return PasswordResetRequest{}, err
	}
	return PasswordResetRequest{Email: strings.ToLower(f["email"])}, nil
}

// ---- パスワード再設定（新パスワード入力） ----

type PasswordResetComplete struct {
	Token       string
	NewPassword string
}

type PasswordResetCompleteValidator struct {
	fields fieldSet
	pair   PasswordPair
}

func NewPasswordResetCompleteValidator(policy PasswordPolicy) *PasswordResetCompleteValidator {
	return &PasswordResetCompleteValidator{
		fields: newFieldSet(FieldSpec{Name: "token", Label: "Token", Required: true, MaxLength: 64, Strip: true}),
		pair:   NewPasswordPair("new_password1", "new_password2", "New password", "New password confirmation", policy),
	}
}

func (v *PasswordResetCompleteValidator) Validate(in Input, attrs ...UserAttribute) (PasswordResetComplete, error) {
	errs := newValidationError()
	f := v.fields.clean(in, errs)
	pw := v.pair.Validate(in, errs, attrs...)
	if err := errs.orNil(); err != nil {
		return PasswordResetComplete{}, err
	}
	return PasswordResetComplete{Token: f["token"], NewPassword: pw}, nil
}

// ---- 住所 ----

type AddressInput struct {
	Locality string
	City     string
	State    string
}

type AddressValidator struct {
	fields fieldSet
}

func NewAddressValidator() *AddressValidator {
	return &AddressValidator{fields: newFieldSet(
		FieldSpec{Name: "locality", Label: "Locality", Placeholder: "Popular places like restaurants, landmarks", Required: true, MaxLength: 150, Strip: true},
		FieldSpec{Name: "city", Label: "City", Placeholder: "City", Required: true, MaxLength: 150, Strip: true},
		FieldSpec{Name: "state", Label: "State", Placeholder: "State or province", Required: true, MaxLength: 150, Strip: true},
	)}
}

func (v *AddressValidator) Validate(in Input) (AddressInput, error) {
	errs := newValidationError()
	f := v.fields.clean(in, errs)
	if err := errs.orNil(); err != nil {
		return AddressInput{}, err
	}
	return AddressInput{Locality: f["locality"], City: f["city"], State: f["state"]}, nil
}

// ---- お問い合わせ ----

type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type ContactValidator struct {
	fields fieldSet
}

func NewContactValidator() *ContactValidator {
	return &ContactValidator{fields: newFieldSet(
		FieldSpec{Name: "name", Label: "Name", Required: true, MaxLength: 100, Strip: true},
		FieldSpec{Name: "email", Label: "Email", Required: true, Email: true, Strip: true},
		FieldSpec{Name: "phone", Label: "Phone", Required: true, MaxLength: 15, Strip: true},
		FieldSpec{Name: "subject", Label: "Subject", Required: true, MaxLength: 100, Strip: true},
		FieldSpec{Name: "message", Label: "Message", Required: true, Strip: true},
	)}
}

func (v *ContactValidator) Validate(in Input) (ContactMessage, error) {
	errs := newValidationError()
	f := v.fields.clean(in, errs)
	if err := errs.orNil(); err != nil {
		return ContactMessage{}, err
	}
	return ContactMessage{
		Name:    f["name"],
		Email:   f["email"],
		Phone:   f["phone"],
		Subject: f["subject"],
		Message: f["message"],
	}, nil
}

// ---- 購読（メールだけ） ----

type SubscribeValidator struct {
	fields fieldSet
}

func NewSubscribeValidator() *SubscribeValidator {
	return &SubscribeValidator{fields: newFieldSet(
		FieldSpec{Name: "email", Label: "Email", Required: true, MaxLength: 254, Email: true, Strip: true},
	)}
}

func (v *SubscribeValidator) Validate(in Input) (string, error) {
	errs := newValidationError()
	f := v.fields.clean(in, errs)
	if err := errs.orNil(); err != nil {
		return "", err
	}
	return f["email"], nil
}
