package storage

import (
	"gorm.io/gorm"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
)

// DatabaseArchive persists completed leads to PostgreSQL in addition to
// the spreadsheet. Purely a backup destination: failures never block the
// dialogue.
type DatabaseArchive struct {
	db *gorm.DB
}

// NewDatabaseArchive creates a lead archive backed by the given database
func NewDatabaseArchive(db *gorm.DB) *DatabaseArchive {
	return &DatabaseArchive{db: db}
}

func (a *DatabaseArchive) SaveLead(lead *models.Lead) error {
	return a.db.Create(lead).Error
}

// CountLeads reports archived leads (used by the status endpoint)
func (a *DatabaseArchive) CountLeads() (int64, error) {
	var count int64
	err := a.db.Model(&models.Lead{}).Count(&count).Error
	return count, err
}
