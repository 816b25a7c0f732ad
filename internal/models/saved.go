package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SavedDbName  = "trailmate"
	SavedColName = "saved_places"

	SavedKindDestination = "destination"
	SavedKindPlace       = "place"
)

type SavedItem struct {
	ItemID  string    `bson:"item_id" json:"item_id"`
	Kind    string    `bson:"kind" json:"kind"`
	SavedAt time.Time `bson:"saved_at" json:"saved_at"`
}

// SavedPlaces is one user's wishlist of curated destinations and community places.
type SavedPlaces struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    string               `bson:"user_id" json:"user_id"`
	Items     map[string]SavedItem `bson:"items" json:"items"`
	CreatedAt time.Time            `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time            `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type SavedRepo interface {
	SaveItem(ctx context.Context, userID, itemID, kind string) (*SavedPlaces, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	GetSaved(ctx context.Context, userID string) (*SavedPlaces, error)
}

func (mdb *MongodbRepo) GetCollection(dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(dbName).Collection(colName), nil
}

// EnsureIndexes keeps one wishlist document per user.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(SavedDbName, SavedColName)
	if err != nil {
		return err
	}
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("error creating saved places index: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) SaveItem(ctx context.Context, userID, itemID, kind string) (*SavedPlaces, error) {
	col, err := mdb.GetCollection(SavedDbName, SavedColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	now := time.Now()
	filter := bson.M{"user_id": userID}

	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			fmt.Sprintf("items.%s", itemID): SavedItem{
				ItemID:  itemID,
				Kind:    kind,
				SavedAt: now,
			},
		},
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result SavedPlaces
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error saving item: %w", err)
	}

	return &result, nil
}

func (mdb *MongodbRepo) RemoveItem(ctx context.Context, userID, itemID string) error {
	col, err := mdb.GetCollection(SavedDbName, SavedColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$unset": bson.M{
			fmt.Sprintf("items.%s", itemID): "",
		},
		"$set": bson.M{
			"updated_at": time.Now(),
		},
	}

	_, err = col.UpdateOne(ctx, filter, update)
	return err
}

func (mdb *MongodbRepo) GetSaved(ctx context.Context, userID string) (*SavedPlaces, error) {
	col, err := mdb.GetCollection(SavedDbName, SavedColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var saved SavedPlaces
	err = col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&saved)
	if err == mongo.ErrNoDocuments {
		return &SavedPlaces{UserID: userID, Items: map[string]SavedItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding saved places: %w", err)
	}

	return &saved, nil
}
