package repository

import (
	"context"
	"time"

	"flowershop-api/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	FindByID(ctx context.Context, subscriptionID string) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error)
	ListAll(ctx context.Context) ([]*model.Subscription, error)
	// Update rewrites the subscription's mutable fields under a version check
	// and, when replaceDeliveries is set, swaps the derived delivery rows in
	// the same transaction. Reports false on a version mismatch.
	Update(ctx context.Context, sub *model.Subscription, replaceDeliveries bool) (bool, error)
	Cancel(ctx context.Context, subscriptionID string, version int64) (bool, error)
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepoImpl) FindByID(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Preload("Deliveries", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ?", subscriptionID).
		First(&sub).Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.WithContext(ctx).
		Preload("Deliveries", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error

	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *subscriptionRepoImpl) ListAll(ctx context.Context) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.WithContext(ctx).
		Preload("Deliveries", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Order("created_at DESC").
		Find(&subs).Error

	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *subscriptionRepoImpl) Update(ctx context.Context, sub *model.Subscription, replaceDeliveries bool) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Subscription{}).
			Where("id = ? AND version = ?", sub.ID, sub.Version).
			Updates(map[string]interface{}{
				"type":                 sub.Type,
				"status":               sub.Status,
				"color_theme":          sub.ColorTheme,
				"start_date":           sub.StartDate,
				"end_date":             sub.EndDate,
				"receiver_name":        sub.ReceiverName,
				"phone":                sub.Phone,
				"address":              sub.Address,
				"special_instructions": sub.SpecialInstructions,
				"version":              sub.Version + 1,
				"updated_at":           time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		updated = true

		if !replaceDeliveries {
			return nil
		}

		if err := tx.Where("subscription_id = ?", sub.ID).
			Delete(&model.SubscriptionDelivery{}).Error; err != nil {
			return err
		}

		deliveries := make([]*model.SubscriptionDelivery, 0, len(sub.Deliveries))
		for i := range sub.Deliveries {
			d := sub.Deliveries[i]
			d.ID = 0
			d.SubscriptionID = sub.ID
			deliveries = append(deliveries, &d)
		}

		return tx.Create(&deliveries).Error
	})

	if err != nil {
		return false, err
	}

	return updated, nil
}

func (r *subscriptionRepoImpl) Cancel(ctx context.Context, subscriptionID string, version int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("id = ? AND version = ?", subscriptionID, version).
		Updates(map[string]interface{}{
			"status":     model.SubscriptionStatusCancelled,
			"version":    version + 1,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
