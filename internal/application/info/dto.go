package info

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/info"
)

// PageRequest replaces the text of a static page
type PageRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}

// FAQRequest is one question of a FAQ group
type FAQRequest struct {
	Question string `json:"question" binding:"required,max=100"`
	Answer   string `json:"answer" binding:"max=500"`
	Priority int    `json:"priority"`
}

// CreateFAQGroupRequest creates a FAQ group with its questions
type CreateFAQGroupRequest struct {
	Title    string       `json:"title" binding:"required,max=100"`
	Priority int          `json:"priority"`
	FAQs     []FAQRequest `json:"faqs" binding:"dive"`
}

// CreateShopLocationRequest adds a store
type CreateShopLocationRequest struct {
	Address   string  `json:"address" binding:"required,max=200"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// ContactRequest is the contact form
type ContactRequest struct {
	Name       string     `json:"name" binding:"required,max=100"`
	Email      string     `json:"email" binding:"required,email"`
	Phone      *string    `json:"phone" binding:"omitempty,max=20"`
	Subject    string     `json:"subject" binding:"required,max=150"`
	Message    string     `json:"message" binding:"required,max=500"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// PageResponse is a static page
type PageResponse struct {
	Text string `json:"text"`
}

// FAQResponse is a question and its answer
type FAQResponse struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}

// FAQGroupResponse is a titled list of questions
type FAQGroupResponse struct {
	ID    uuid.UUID     `json:"id"`
	Title string        `json:"title"`
	FAQs  []FAQResponse `json:"faqs"`
}

// ShopLocationResponse is a store
type ShopLocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}

// PlaceResponse is a state, a city or an inquiry category
type PlaceResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// ContactResponse acknowledges a contact request
type ContactResponse struct {
	ID uuid.UUID `json:"id"`
}

// ToFAQGroupResponse converts a FAQ group
func ToFAQGroupResponse(g *info.FAQGroup) FAQGroupResponse {
	faqs := make([]FAQResponse, len(g.FAQs))
	for i, f := range g.FAQs {
		faqs[i] = FAQResponse{ID: f.ID, Question: f.Question, Answer: f.Answer}
	}
	return FAQGroupResponse{ID: g.ID, Title: g.Title, FAQs: faqs}
}

// ToShopLocationResponse converts a shop location
func ToShopLocationResponse(l *info.ShopLocation) ShopLocationResponse {
	return ShopLocationResponse{ID: l.ID, Address: l.Address, Latitude: l.Latitude, Longitude: l.Longitude}
}
