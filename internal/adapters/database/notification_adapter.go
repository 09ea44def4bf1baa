package database

import (
	"context"
	"fmt"

	"github.com/slotbook/backend/internal/domain/entities"
	"github.com/slotbook/backend/internal/domain/repositories"
	mongoclient "github.com/slotbook/backend/internal/infrastructure/clients/mongo"
	apperrors "github.com/slotbook/backend/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// notificationCollection is the MongoDB collection backing notifications.
const notificationCollection = "notifications"

// NotificationAdapter implements the NotificationRepository interface
// against MongoDB.
type NotificationAdapter struct {
	coll *mongo.Collection
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *mongoclient.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		coll: client.Collection(notificationCollection),
	}
}

// Create stores a new notification
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	if _, err := a.coll.InsertOne(ctx, notification); err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}
	return nil
}

// ListByRecipient retrieves notifications for a recipient, newest first
func (a *NotificationAdapter) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*entities.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := a.coll.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	defer cursor.Close(ctx)

	var notifications []*entities.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, apperrors.NewInternalError("failed to decode notifications", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag and returns the updated record. Marking
// an already-read notification succeeds and returns it unchanged.
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) (*entities.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notification entities.Notification
	err := a.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true}},
		opts,
	).Decode(&notification)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("notification with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to mark notification read", err)
	}
	return &notification, nil
}
