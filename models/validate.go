// ABOUTME: Field validation for contact, deal and activity writes
// ABOUTME: Checks presence and ranges only; reference checks live in the store
package models

import "strings"

type fieldErrors []FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Errors: f}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate checks required contact fields. An empty type is accepted and
// later defaulted to individual.
func (in ContactInput) Validate() error {
	var errs fieldErrors
	if blank(in.Name) {
		errs.add("name", "is required")
	}
	if blank(in.Email) {
		errs.add("email", "is required")
	}
	if in.Type != "" && !in.Type.Valid() {
		errs.add("type", "must be individual or business")
	}
	return errs.err()
}

// Validate checks a full contact record for replacement.
func (c Contact) Validate() error {
	var errs fieldErrors
	if blank(c.ID) {
		errs.add("id", "is required")
	}
	if err := (ContactInput{Name: c.Name, Email: c.Email, Type: c.Type}).Validate(); err != nil {
		errs = append(errs, err.(*ValidationError).Errors...)
	}
	if c.Type == "" {
		errs.add("type", "is required")
	}
	return errs.err()
}

func validateDealFields(errs *fieldErrors, title, contactID string, stage Stage, value float64, probability int) {
	if blank(title) {
		errs.add("title", "is required")
	}
	if blank(contactID) {
		errs.add("contactId", "is required")
	}
	if stage != "" && !stage.Valid() {
		errs.add("stage", "must be one of lead, qualified, proposal, negotiation, won, lost")
	}
	if value < 0 {
		errs.add("value", "must not be negative")
	}
	if probability < 0 || probability > 100 {
		errs.add("probability", "must be between 0 and 100")
	}
}

// Validate checks the caller-supplied fields of a new deal.
func (in DealInput) Validate() error {
	var errs fieldErrors
	validateDealFields(&errs, in.Title, in.ContactID, in.Stage, in.Value, in.Probability)
	return errs.err()
}

// Validate checks a full deal record for replacement.
func (d Deal) Validate() error {
	var errs fieldErrors
	if blank(d.ID) {
		errs.add("id", "is required")
	}
	validateDealFields(&errs, d.Title, d.ContactID, d.Stage, d.Value, d.Probability)
	if d.Stage == "" {
		errs.add("stage", "is required")
	}
	return errs.err()
}

// Validate checks the caller-supplied fields of a new activity.
func (in ActivityInput) Validate() error {
	var errs fieldErrors
	if blank(in.ContactID) {
		errs.add("contactId", "is required")
	}
	if blank(in.Description) {
		errs.add("description", "is required")
	}
	if in.Type != "" && !in.Type.Valid() {
		errs.add("type", "must be one of call, email, meeting, note")
	}
	return errs.err()
}
