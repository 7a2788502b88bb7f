package models

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/info"
)

// PageModel stores versions of a static page; the newest active row wins
type PageModel struct {
	BaseModel
	Kind     info.PageKind `gorm:"type:varchar(30);not null;index"`
	Text     string        `gorm:"type:text;not null"`
	IsActive bool          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PageModel) TableName() string { return "pages" }

// ToDomain converts the model to a domain Page
func (m *PageModel) ToDomain() *info.Page {
	return &info.Page{BaseEntity: m.BaseModel.ToDomain(), Kind: m.Kind, Text: m.Text, IsActive: m.IsActive}
}

// PageModelFromDomain creates a model from a domain Page
func PageModelFromDomain(p *info.Page) *PageModel {
	m := &PageModel{Kind: p.Kind, Text: p.Text, IsActive: p.IsActive}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// FAQGroupModel groups questions for display
type FAQGroupModel struct {
	BaseModel
	Title    string `gorm:"type:varchar(100);not null"`
	Priority int    `gorm:"not null;default:0"`

	FAQs []FAQModel `gorm:"foreignKey:GroupID"`
}

// TableName returns the table name for GORM
func (FAQGroupModel) TableName() string { return "faq_groups" }

// ToDomain converts the model and its preloaded questions to a domain FAQGroup
func (m *FAQGroupModel) ToDomain() *info.FAQGroup {
	g := &info.FAQGroup{BaseEntity: m.BaseModel.ToDomain(), Title: m.Title, Priority: m.Priority, FAQs: []info.FAQ{}}
	for _, f := range m.FAQs {
		g.FAQs = append(g.FAQs, info.FAQ{ID: f.ID, GroupID: f.GroupID, Question: f.Question, Answer: f.Answer, Priority: f.Priority})
	}
	return g
}

// FAQGroupModelFromDomain creates a model, including questions, from a domain FAQGroup
func FAQGroupModelFromDomain(g *info.FAQGroup) *FAQGroupModel {
	m := &FAQGroupModel{Title: g.Title, Priority: g.Priority}
	m.FromDomainBaseEntity(g.BaseEntity)
	for _, f := range g.FAQs {
		m.FAQs = append(m.FAQs, FAQModel{ID: f.ID, GroupID: g.ID, Question: f.Question, Answer: f.Answer, Priority: f.Priority})
	}
	return m
}

// FAQModel is one question and answer
type FAQModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Question string    `gorm:"type:varchar(100);not null"`
	Answer   string    `gorm:"type:varchar(500)"`
	Priority int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (FAQModel) TableName() string { return "faqs" }

// ShopLocationModel is a physical store location
type ShopLocationModel struct {
	BaseModel
	Address   string  `gorm:"type:varchar(200);not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShopLocationModel) TableName() string { return "shop_locations" }

// ToDomain converts the model to a domain ShopLocation
func (m *ShopLocationModel) ToDomain() *info.ShopLocation {
	return &info.ShopLocation{BaseEntity: m.BaseModel.ToDomain(), Address: m.Address, Latitude: m.Latitude, Longitude: m.Longitude}
}

// ShopLocationModelFromDomain creates a model from a domain ShopLocation
func ShopLocationModelFromDomain(l *info.ShopLocation) *ShopLocationModel {
	m := &ShopLocationModel{Address: l.Address, Latitude: l.Latitude, Longitude: l.Longitude}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// StateModel is a state or province
type StateModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (StateModel) TableName() string { return "states" }

// CityModel belongs to a state
type CityModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StateID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title   string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CityModel) TableName() string { return "cities" }

// InquiryCategoryModel classifies contact requests
type InquiryCategoryModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title    string    `gorm:"type:varchar(100);not null"`
	Priority int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InquiryCategoryModel) TableName() string { return "inquiry_categories" }

// ContactRequestModel is a message left through the contact form
type ContactRequestModel struct {
	BaseModel
	Name       string     `gorm:"type:varchar(100);not null"`
	Email      string     `gorm:"type:varchar(254);not null"`
	Phone      *string    `gorm:"type:varchar(20)"`
	Subject    string     `gorm:"type:varchar(150);not null"`
	Message    string     `gorm:"type:varchar(500);not null"`
	CategoryID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ContactRequestModel) TableName() string { return "contact_requests" }

// ContactRequestModelFromDomain creates a model from a domain ContactRequest
func ContactRequestModelFromDomain(r *info.ContactRequest) *ContactRequestModel {
	m := &ContactRequestModel{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Subject:    r.Subject,
		Message:    r.Message,
		CategoryID: r.CategoryID,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
