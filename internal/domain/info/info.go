package info

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

const (
	MaxAboutUsLength       = 1000
	MaxPrivacyPolicyLength = 5000
	MaxAnswerLength        = 500
	MaxContactMessage      = 500
)

// Page is a static text page such as about us or the privacy policy
type Page struct {
	shared.BaseEntity
	Kind     PageKind
	Text     string
	IsActive bool
}

// PageKind distinguishes the static pages
type PageKind string

const (
	PageAboutUs       PageKind = "about_us"
	PagePrivacyPolicy PageKind = "privacy_policy"
)

// NewPage creates an active page, enforcing the length limit of its kind
func NewPage(kind PageKind, text string) (*Page, error) {
	limit := MaxAboutUsLength
	switch kind {
	case PageAboutUs:
	case PagePrivacyPolicy:
		limit = MaxPrivacyPolicyLength
	default:
		return nil, shared.NewDomainError("INVALID_PAGE", "Unknown page kind")
	}
	if strings.TrimSpace(text) == "" {
		return nil, shared.NewDomainError("INVALID_TEXT", "Page text cannot be empty")
	}
	if utf8.RuneCountInString(text) > limit {
		return nil, shared.NewDomainError("INVALID_TEXT", "Page text is too long")
	}
	return &Page{BaseEntity: shared.NewBaseEntity(), Kind: kind, Text: text, IsActive: true}, nil
}

// FAQGroup groups questions
type FAQGroup struct {
	shared.BaseEntity
	Title    string
	Priority int
	FAQs     []FAQ
}

// FAQ is a question with its answer
type FAQ struct {
	ID       uuid.UUID
	GroupID  uuid.UUID
	Question string
	Answer   string
	Priority int
}

// NewFAQGroup creates a group
func NewFAQGroup(title string, priority int) (*FAQGroup, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > 100 {
		return nil, shared.NewDomainError("INVALID_TITLE", "FAQ group title must be 1 to 100 characters")
	}
	return &FAQGroup{BaseEntity: shared.NewBaseEntity(), Title: title, Priority: priority, FAQs: []FAQ{}}, nil
}

// AddFAQ appends a question to the group
func (g *FAQGroup) AddFAQ(question, answer string, priority int) (*FAQ, error) {
	question = strings.TrimSpace(question)
	if question == "" || utf8.RuneCountInString(question) > 100 {
		return nil, shared.NewDomainError("INVALID_QUESTION", "Question must be 1 to 100 characters")
	}
	if utf8.RuneCountInString(answer) > MaxAnswerLength {
		return nil, shared.NewDomainError("INVALID_ANSWER", "Answer cannot exceed 500 characters")
	}
	faq := FAQ{ID: uuid.New(), GroupID: g.ID, Question: question, Answer: answer, Priority: priority}
	g.FAQs = append(g.FAQs, faq)
	return &g.FAQs[len(g.FAQs)-1], nil
}

// ShopLocation is a physical store
type ShopLocation struct {
	shared.BaseEntity
	Address   string
	Latitude  float64
	Longitude float64
}

// NewShopLocation creates a store location
func NewShopLocation(address string, lat, lng float64) (*ShopLocation, error) {
	address = strings.TrimSpace(address)
	if address == "" || utf8.RuneCountInString(address) > 200 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address must be 1 to 200 characters")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, shared.NewDomainError("INVALID_COORDINATES", "Coordinates are out of range")
	}
	return &ShopLocation{BaseEntity: shared.NewBaseEntity(), Address: address, Latitude: lat, Longitude: lng}, nil
}

// State is a province
type State struct {
	ID    uuid.UUID
	Title string
}

// City belongs to a state
type City struct {
	ID      uuid.UUID
	StateID uuid.UUID
	Title   string
}

// InquiryCategory classifies contact requests
type InquiryCategory struct {
	ID       uuid.UUID
	Title    string
	Priority int
}

// ContactRequest is a message sent through the contact form
type ContactRequest struct {
	shared.BaseEntity
	Name       string
	Email      string
	Phone      *string
	Subject    string
	Message    string
	CategoryID *uuid.UUID
}

// NewContactRequest validates and creates a contact request
func NewContactRequest(name, email, subject, message string, phone *string, categoryID *uuid.UUID) (*ContactRequest, error) {
	name = strings.TrimSpace(name)
	subject = strings.TrimSpace(subject)
	if name == "" || utf8.RuneCountInString(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name must be 1 to 100 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if subject == "" || utf8.RuneCountInString(subject) > 150 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject must be 1 to 150 characters")
	}
	if strings.TrimSpace(message) == "" || utf8.RuneCountInString(message) > MaxContactMessage {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message must be 1 to 500 characters")
	}
	return &ContactRequest{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      strings.TrimSpace(email),
		Phone:      phone,
		Subject:    subject,
		Message:    message,
		CategoryID: categoryID,
	}, nil
}
