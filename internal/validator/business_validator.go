package validator

import "strings"

// OptionInput is the author-supplied shape of one answer option.
type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// ValidateQuestionOptions enforces the rules that make a question gradable:
// at least two options, none with empty text, exactly one marked correct.
// The scoring engine trusts its input, so these rules are the only guard.
func (v *Validator) ValidateQuestionOptions(options []OptionInput) ValidationErrors {
	var errs ValidationErrors

	if len(options) < 2 {
		errs = append(errs, ValidationError{
			Field:   "options",
			Message: "question needs at least 2 options",
			Value:   len(options),
			Rule:    "business_logic",
		})
	}

	correct := 0
	for i, o := range options {
		if strings.TrimSpace(o.Text) == "" {
			errs = append(errs, ValidationError{
				Field:   "options",
				Message: "option text must not be empty",
				Value:   i,
				Rule:    "business_logic",
			})
		}
		if o.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		errs = append(errs, ValidationError{
			Field:   "options",
			Message: "exactly one option must be marked correct",
			Value:   correct,
			Rule:    "business_logic",
		})
	}

	return errs
}

// ValidateQuestionText rejects empty prompts.
func (v *Validator) ValidateQuestionText(text string) ValidationErrors {
	if strings.TrimSpace(text) == "" {
		return ValidationErrors{{
			Field:   "text",
			Message: "question text must not be empty",
			Rule:    "business_logic",
		}}
	}
	return nil
}
