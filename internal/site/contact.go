package site

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// MessageSent confirms a contact submission.
const MessageSent = "Message sent successfully!"

// ContactForm is the public contact form.
type ContactForm struct {
	Name    string `validate:"min=2"`
	Email   string `validate:"required,email"`
	Subject string `validate:"min=5"`
	Message string `validate:"min=10"`
}

var contactMessages = map[string]string{
	"Name":    "Name must be at least 2 characters",
	"Email":   "Please enter a valid email address",
	"Subject": "Subject must be at least 5 characters",
	"Message": "Message must be at least 10 characters",
}

// FieldErrors maps a lower-case form field name to its validation message.
type FieldErrors map[string]string

// ContactResult is the outcome of a submission. On success the form is reset.
type ContactResult struct {
	Form    ContactForm
	Errors  FieldErrors
	Success string
}

// Contact validates contact submissions. Messages are logged, never stored or sent.
type Contact struct {
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewContact constructs the contact form handler.
func NewContact(logger *logrus.Logger) *Contact {
	return &Contact{validate: validator.New(), logger: logger}
}

// Validate returns the message of every invalid field, or nil.
func (c *Contact) Validate(form ContactForm) FieldErrors {
	err := c.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		key := lowerFirst(fe.StructField())
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = contactMessages[fe.StructField()]
	}
	return out
}

// Submit validates form and logs it. Invalid forms are returned unchanged with errors.
func (c *Contact) Submit(ctx context.Context, form ContactForm) ContactResult {
	if errs := c.Validate(form); errs != nil {
		return ContactResult{Form: form, Errors: errs}
	}

	if c.logger != nil {
		c.logger.WithContext(ctx).WithFields(logrus.Fields{
			"name":    form.Name,
			"email":   form.Email,
			"subject": form.Subject,
		}).Info("contact form submitted")
	}

	return ContactResult{Success: MessageSent}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
