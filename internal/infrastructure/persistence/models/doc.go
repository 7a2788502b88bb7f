// Package models holds the GORM persistence models. Domain types stay free
// of ORM tags; each model converts with ToDomain / FromDomain and the
// repositories only ever touch models.
package models
