package vapi

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a draft against the documented provider bounds. The returned
// *ValidationError lists every violated field so the UI can render the full
// list at once.
func (d AssistantDraft) Validate() error {
	return collectViolations(validate.Struct(d))
}

// ValidateUpdate applies the same rules to a partial update, where the name
// may be omitted to keep the current one.
func (d AssistantDraft) ValidateUpdate() error {
	return collectViolations(validate.StructExcept(d, "Name"))
}

// Validate checks a call draft before submission.
func (d CallDraft) Validate() error {
	err := collectViolations(validate.Struct(d))
	if d.Customer != nil && strings.TrimSpace(d.Customer.Number) == "" {
		verr, ok := err.(*ValidationError)
		if !ok {
			verr = &ValidationError{}
		}
		verr.Violations = append(verr.Violations, FieldViolation{
			Field:   "customer.number",
			Rule:    "required",
			Message: "customer.number must not be empty",
		})
		return verr
	}
	return err
}

func collectViolations(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := &ValidationError{Violations: make([]FieldViolation, 0, len(verrs))}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, FieldViolation{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: violationMessage(fe),
		})
	}
	return out
}

// fieldPath turns a validator namespace like "AssistantDraft.Voice.Speed"
// into the wire-level path "voice.speed".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = lowerFirst(p)
	}
	return strings.Join(parts, ".")
}

func lowerFirst(s string) string {
	// Field names here are single-word or camel case; rewrite known initialisms.
	switch s {
	case "":
		return s
	case "ID":
		return "id"
	case "VoiceID":
		return "voiceId"
	case "AssistantID":
		return "assistantId"
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func violationMessage(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed rule %q", field, fe.Tag())
	}
}
