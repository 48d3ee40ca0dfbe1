package valuations

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending Status = "Pendente"
	StatusActive  Status = "Ativo"
)

// ErrValidation marks input rejected before anything is computed or stored.
var ErrValidation = errors.New("validation error")

// Valuation is one estimate request. Rows are append-only.
type Valuation struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Address        string    `gorm:"column:endereco;type:text;not null" json:"endereco"`
	UsableArea     float64   `gorm:"column:area;not null" json:"area"`
	Rooms          int       `gorm:"column:quartos" json:"quartos"`
	QualityTier    int       `gorm:"column:padrao" json:"padrao"`
	EstimatedValue *float64  `gorm:"column:valor_estimado" json:"valor_estimado"`
	PricingModel   string    `gorm:"column:modelo;type:varchar(20)" json:"modelo"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Status         Status    `gorm:"type:varchar(20);not null;default:'Pendente'" json:"status"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Valuation) TableName() string {
	return "avaliacoes"
}

// ValidateRecord checks the fields every stored valuation must carry.
func ValidateRecord(address string, usableArea float64) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: endereco is required", ErrValidation)
	}
	if usableArea <= 0 {
		return fmt.Errorf("%w: area must be greater than zero", ErrValidation)
	}
	return nil
}
