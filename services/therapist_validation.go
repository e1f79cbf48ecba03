package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"reflexo_app_go/models"
	"reflexo_app_go/services/i18n"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	// MinTherapistAge is the youngest accepted age on the day of validation
	MinTherapistAge = 18
	// MaxPhoneDigits mirrors the phone column width
	MaxPhoneDigits = 15
)

var (
	personalReferencePattern = regexp.MustCompile(`^[\p{L}0-9\s]+$`)
	gmailPattern             = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@gmail\.com$`)
	addressPattern           = regexp.MustCompile(`^[\p{L}0-9\s,.\-]+$`)
	allowedPictureExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
)

// TherapistInput is the submitted field set for a create, or the merged record for an update.
// Nil optional fields are absent; a non-nil empty last_name_maternal is a blank value.
type TherapistInput struct {
	DocumentType      string  `json:"document_type" validate:"required"`
	DocumentNumber    string  `json:"document_number" validate:"required"`
	FirstName         string  `json:"first_name" validate:"required,nonblank"`
	LastNamePaternal  string  `json:"last_name_paternal" validate:"required,nonblank"`
	LastNameMaternal  *string `json:"last_name_maternal" validate:"omitnil,nonblank"`
	BirthDate         string  `json:"birth_date" validate:"required,isodate,notfuture,adult"`
	Gender            string  `json:"gender" validate:"required"`
	PersonalReference *string `json:"personal_reference" validate:"omitnil,personalref"`
	Phone             string  `json:"phone" validate:"required,number,max=15"`
	Email             *string `json:"email" validate:"omitnil,gmail"`
	Address           *string `json:"address" validate:"omitnil,address"`
	ProfilePicture    *string `json:"profile_picture" validate:"omitnil,imageext"`
	RegionID          *string `json:"region"`
	ProvinceID        *string `json:"province"`
	DistrictID        *string `json:"district"`
}

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so error maps line up with the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	mustRegister(v.RegisterValidation("ubigeo", func(fl validator.FieldLevel) bool {
		return isDigits(fl.Field().String())
	}))
	mustRegister(v.RegisterValidation("personalref", func(fl validator.FieldLevel) bool {
		return personalReferencePattern.MatchString(fl.Field().String())
	}))
	mustRegister(v.RegisterValidation("gmail", func(fl validator.FieldLevel) bool {
		return gmailPattern.MatchString(fl.Field().String())
	}))
	mustRegister(v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return addressPattern.MatchString(fl.Field().String())
	}))
	mustRegister(v.RegisterValidation("imageext", func(fl validator.FieldLevel) bool {
		return IsAllowedPictureName(fl.Field().String())
	}))
	mustRegister(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}))
	mustRegister(v.RegisterValidationCtx("notfuture", func(ctx context.Context, fl validator.FieldLevel) bool {
		birth, err := ParseDate(fl.Field().String())
		if err != nil {
			return true // reported by isodate
		}
		return !birth.After(TodayFrom(ctx))
	}))
	mustRegister(v.RegisterValidationCtx("adult", func(ctx context.Context, fl validator.FieldLevel) bool {
		birth, err := ParseDate(fl.Field().String())
		if err != nil {
			return true
		}
		return AgeOn(birth, TodayFrom(ctx)) >= MinTherapistAge
	}))

	v.RegisterStructValidation(validateDocumentNumber, TherapistInput{})
	return v
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// validateDocumentNumber runs after the field rules, so an empty number has already been reported
func validateDocumentNumber(sl validator.StructLevel) {
	in := sl.Current().Interface().(TherapistInput)
	if in.DocumentNumber == "" {
		return
	}
	if rule := DocumentNumberRule(in.DocumentType, in.DocumentNumber); rule != "" {
		sl.ReportError(in.DocumentNumber, "document_number", "DocumentNumber", rule, in.DocumentType)
	}
}

// DocumentNumberRule returns the name of the rule number breaks for docType, or "" when it is valid.
// Unrecognised document types have no format rule.
func DocumentNumberRule(docType, number string) string {
	if !models.IsKnownDocumentType(docType) {
		zap.L().Debug("no document number rule for document type", zap.String("document_type", docType))
		return ""
	}

	switch docType {
	case models.DocumentTypeDNI:
		if !isDigits(number) || len(number) < 8 || len(number) > 9 {
			return "dni"
		}
	case models.DocumentTypeCE:
		if !isDigits(number) || len(number) > 12 {
			return "ce"
		}
	case models.DocumentTypePTP:
		if !isDigits(number) || len(number) != 9 {
			return "ptp"
		}
	case models.DocumentTypeCR, models.DocumentTypePAS:
		if !isAlphanumeric(number) {
			return "alphanumeric"
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// IsAllowedPictureName checks the extension of a picture file name or storage key
func IsAllowedPictureName(name string) bool {
	return allowedPictureExtensions[strings.ToLower(filepath.Ext(name))]
}

// ValidateTherapist checks every field of in and returns a *ValidationError listing all failures.
// It has no side effects.
func ValidateTherapist(ctx context.Context, in *TherapistInput) error {
	return validateFields(ctx, in)
}

// validateFields runs the struct tags of v and collects every failure into a *ValidationError
func validateFields(ctx context.Context, v interface{}) error {
	err := fieldValidator.StructCtx(ctx, v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	verr := NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), validationMessage(ctx, fe))
	}
	return verr
}

func validationMessage(ctx context.Context, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return i18n.T(ctx, "validation.required")
	case "nonblank":
		return i18n.T(ctx, "validation.blank")
	case "dni", "ce", "ptp":
		return i18n.T(ctx, "validation.document_number."+fe.Tag())
	case "alphanumeric":
		return i18n.T(ctx, "validation.document_number.alphanumeric", map[string]interface{}{"type": fe.Param()})
	case "number":
		return i18n.T(ctx, "validation.phone.digits")
	case "max":
		return i18n.T(ctx, "validation.phone.max", map[string]interface{}{"max": fe.Param()})
	case "ubigeo":
		return i18n.T(ctx, "validation.ubigeo")
	case "personalref":
		return i18n.T(ctx, "validation.personal_reference")
	case "gmail":
		return i18n.T(ctx, "validation.email")
	case "address":
		return i18n.T(ctx, "validation.address")
	case "imageext":
		return i18n.T(ctx, "validation.profile_picture")
	case "isodate":
		return i18n.T(ctx, "validation.birth_date.invalid")
	case "notfuture":
		return i18n.T(ctx, "validation.birth_date.future")
	case "adult":
		return i18n.T(ctx, "validation.birth_date.underage", map[string]interface{}{"age": MinTherapistAge})
	default:
		return i18n.T(ctx, "validation.invalid")
	}
}

// Normalize trims names and turns empty optional values into absent ones.
// last_name_maternal keeps an empty string so the blank rule can reject it.
func (in *TherapistInput) Normalize() {
	in.DocumentType = strings.TrimSpace(in.DocumentType)
	in.Gender = strings.TrimSpace(in.Gender)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.PersonalReference = nilIfEmpty(in.PersonalReference)
	in.Email = nilIfEmpty(in.Email)
	in.Address = nilIfEmpty(in.Address)
	in.ProfilePicture = nilIfEmpty(in.ProfilePicture)
	in.RegionID = nilIfEmpty(in.RegionID)
	in.ProvinceID = nilIfEmpty(in.ProvinceID)
	in.DistrictID = nilIfEmpty(in.DistrictID)
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ApplyTo copies a validated input onto t. Names are stored trimmed.
func (in *TherapistInput) ApplyTo(t *models.Therapist) error {
	birth, err := ParseDate(in.BirthDate)
	if err != nil {
		return err
	}

	t.DocumentType = in.DocumentType
	t.DocumentNumber = in.DocumentNumber
	t.FirstName = strings.TrimSpace(in.FirstName)
	t.LastNamePaternal = strings.TrimSpace(in.LastNamePaternal)
	t.LastNameMaternal = nil
	if in.LastNameMaternal != nil {
		maternal := strings.TrimSpace(*in.LastNameMaternal)
		t.LastNameMaternal = &maternal
	}
	t.BirthDate = birth
	t.Gender = in.Gender
	t.PersonalReference = in.PersonalReference
	t.Phone = in.Phone
	t.Email = in.Email
	t.Address = in.Address
	t.ProfilePicture = in.ProfilePicture
	t.RegionID = in.RegionID
	t.ProvinceID = in.ProvinceID
	t.DistrictID = in.DistrictID
	return nil
}

// InputFromTherapist rebuilds the submitted form of a stored record, the base for PATCH merges
func InputFromTherapist(t *models.Therapist) TherapistInput {
	return TherapistInput{
		DocumentType:      t.DocumentType,
		DocumentNumber:    t.DocumentNumber,
		FirstName:         t.FirstName,
		LastNamePaternal:  t.LastNamePaternal,
		LastNameMaternal:  t.LastNameMaternal,
		BirthDate:         t.BirthDate.Format(DateLayout),
		Gender:            t.Gender,
		PersonalReference: t.PersonalReference,
		Phone:             t.Phone,
		Email:             t.Email,
		Address:           t.Address,
		ProfilePicture:    t.ProfilePicture,
		RegionID:          t.RegionID,
		ProvinceID:        t.ProvinceID,
		DistrictID:        t.DistrictID,
	}
}

// OptionalString is a PATCH value for a nullable field. It tells a field that was not sent
// apart from an explicit null, which clears the stored value.
type OptionalString struct {
	Set   bool
	Value *string
}

// OptionalValue returns a supplied non-null value
func OptionalValue(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}

// OptionalNull returns an explicit null
func OptionalNull() OptionalString {
	return OptionalString{Set: true}
}

// UnmarshalJSON is only called for keys present in the body, null included
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// TherapistPatch holds the fields supplied in a PATCH body.
// A nil required field is left unchanged. Nullable fields are OptionalString:
// unsent keeps the stored value, null or an empty string clears it.
type TherapistPatch struct {
	DocumentType      *string        `json:"document_type"`
	DocumentNumber    *string        `json:"document_number"`
	FirstName         *string        `json:"first_name"`
	LastNamePaternal  *string        `json:"last_name_paternal"`
	LastNameMaternal  OptionalString `json:"last_name_maternal"`
	BirthDate         *string        `json:"birth_date"`
	Gender            *string        `json:"gender"`
	PersonalReference OptionalString `json:"personal_reference"`
	Phone             *string        `json:"phone"`
	Email             OptionalString `json:"email"`
	Address           OptionalString `json:"address"`
	ProfilePicture    OptionalString `json:"profile_picture"`
	RegionID          OptionalString `json:"region"`
	ProvinceID        OptionalString `json:"province"`
	DistrictID        OptionalString `json:"district"`
}

// MergeInto overlays the supplied fields onto in
func (p *TherapistPatch) MergeInto(in *TherapistInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setOptional := func(dst **string, src OptionalString) {
		if !src.Set {
			return
		}
		if src.Value == nil {
			*dst = nil
			return
		}
		v := *src.Value
		*dst = &v
	}

	setString(&in.DocumentType, p.DocumentType)
	setString(&in.DocumentNumber, p.DocumentNumber)
	setString(&in.FirstName, p.FirstName)
	setString(&in.LastNamePaternal, p.LastNamePaternal)
	setString(&in.BirthDate, p.BirthDate)
	setString(&in.Gender, p.Gender)
	setString(&in.Phone, p.Phone)
	setOptional(&in.LastNameMaternal, p.LastNameMaternal)
	setOptional(&in.PersonalReference, p.PersonalReference)
	setOptional(&in.Email, p.Email)
	setOptional(&in.Address, p.Address)
	setOptional(&in.ProfilePicture, p.ProfilePicture)
	setOptional(&in.RegionID, p.RegionID)
	setOptional(&in.ProvinceID, p.ProvinceID)
	setOptional(&in.DistrictID, p.DistrictID)
}
