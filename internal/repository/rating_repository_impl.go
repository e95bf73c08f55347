package repository

import (
	"context"
	"fmt"
	"time"

	"health-wheel/internal/domain/entity"
	domainRepo "health-wheel/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) domainRepo.RatingRepository {
	return &ratingRepository{db: db}
}

// Submit writes the rating and both of its references in one transaction.
func (r *ratingRepository) Submit(ctx context.Context, sub entity.RatingSubmission) (*entity.Rating, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	model := ratingModelFrom(entity.NewRating(sub))
	if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
		if isForeignKeyError(err, "patient") || isForeignKeyError(err, "criterion") {
			return nil, fmt.Errorf("%w: %v", domainRepo.ErrInvalidReference, err)
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	rating := model.toEntity()
	return &rating, nil
}

func (r *ratingRepository) FindByPatient(ctx context.Context, patientID int64, domain string) ([]entity.Rating, error) {
	query := r.db.WithContext(ctx).Where("patient_id = ?", patientID)
	if domain != "" {
		query = query.Where("domain = ?", domain)
	}

	var models []ratingModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	ratings := make([]entity.Rating, 0, len(models))
	for _, m := range models {
		ratings = append(ratings, m.toEntity())
	}
	return ratings, nil
}

// ratingModel is the relational shape of entity.Rating.
type ratingModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Title         string    `gorm:"type:text;not null"`
	Type          string    `gorm:"type:varchar(20);not null;default:rating"`
	Rating        int       `gorm:"not null"`
	Data          string    `gorm:"type:varchar(20)"`
	Domain        string    `gorm:"type:varchar(255);not null;index"`
	CriterionText string    `gorm:"type:text;not null"`
	PatientID     int64     `gorm:"not null;index"`
	CriterionID   int64     `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	// Relationships
	Patient   entity.Patient   `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE"`
	Criterion entity.Criterion `gorm:"foreignKey:CriterionID"`
}

func (ratingModel) TableName() string {
	return "ratings"
}

func ratingModelFrom(r *entity.Rating) *ratingModel {
	m := &ratingModel{
		Title:         r.Title,
		Type:          r.Type,
		Rating:        r.Value,
		Data:          r.Data,
		Domain:        r.Domain,
		CriterionText: r.CriterionText,
		PatientID:     r.PatientID,
	}
	if r.CriterionID != nil {
		m.CriterionID = *r.CriterionID
	}
	return m
}

func (m ratingModel) toEntity() entity.Rating {
	criterionID := m.CriterionID
	rating := entity.Rating{
		ID:            m.ID,
		Title:         m.Title,
		Type:          m.Type,
		Value:         m.Rating,
		Data:          m.Data,
		Domain:        m.Domain,
		CriterionText: m.CriterionText,
		CriterionID:   &criterionID,
		PatientID:     m.PatientID,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if !m.UpdatedAt.IsZero() {
		rating.UpdatedAt = m.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return rating
}

// AutoMigrate creates the tables of the relational backend.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Patient{}, &entity.Criterion{}, &ratingModel{})
}
