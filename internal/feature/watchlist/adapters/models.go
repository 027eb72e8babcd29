package adapters

import (
	"time"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// GroupModel is the GORM model for the groups table.
type GroupModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Note      string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (GroupModel) TableName() string {
	return "groups"
}

// ToEntity converts the GORM model to a domain entity.
func (m *GroupModel) ToEntity() entity.Group {
	return entity.Group{ID: m.ID, Name: m.Name, Note: m.Note}
}

// StockModel is the GORM model for the stocks table.
type StockModel struct {
	ID         uint   `gorm:"primaryKey"`
	GroupID    uint   `gorm:"index;not null"`
	Symbol     string `gorm:"size:20;not null"`
	Name       string `gorm:"size:255"`
	MASettings string `gorm:"column:ma_settings;size:100;not null"`
	Note       string `gorm:"type:text"`
	Market     string `gorm:"size:8;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM.
func (StockModel) TableName() string {
	return "stocks"
}

// ToEntity converts the GORM model to a domain entity.
func (m *StockModel) ToEntity() entity.Stock {
	return entity.Stock{
		ID:         m.ID,
		GroupID:    m.GroupID,
		Symbol:     m.Symbol,
		Name:       m.Name,
		MASettings: m.MASettings,
		Note:       m.Note,
		Market:     entity.Market(m.Market),
	}
}

// StockModelFromEntity converts a domain entity to a GORM model.
func StockModelFromEntity(s entity.Stock) *StockModel {
	return &StockModel{
		ID:         s.ID,
		GroupID:    s.GroupID,
		Symbol:     s.Symbol,
		Name:       s.Name,
		MASettings: s.MASettings,
		Note:       s.Note,
		Market:     string(s.Market),
	}
}

// Models lists every table of the watchlist store for AutoMigrate.
func Models() []any {
	return []any{&GroupModel{}, &StockModel{}}
}
