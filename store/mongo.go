package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/SergioCaMi/Gallery/models"
)

const imagesCollection = "images"

// mongoImage wraps the record with the ObjectID the driver manages. The
// hex form of the ObjectID is what callers see as the record id.
type mongoImage struct {
	OID          bson.ObjectID `bson:"_id,omitempty"`
	models.Image `bson:",inline"`
}

func (m mongoImage) toImage() *models.Image {
	img := m.Image
	img.ID = m.OID.Hex()
	return &img
}

// MongoStore is the durable backend. Every mutation is committed before
// returning and reads always query the collection directly.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore prepares the images collection, creating the unique
// index on the source URL that backs the duplicate guard.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	coll := db.Collection(imagesCollection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "urlImagen", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create url index: %w", err)
	}

	return &MongoStore{coll: coll}, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Image, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	var docs []mongoImage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}

	images := make([]models.Image, 0, len(docs))
	for _, d := range docs {
		images = append(images, *d.toImage())
	}
	return images, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id string) (*models.Image, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot match any record.
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) GetByURL(ctx context.Context, url string) (*models.Image, error) {
	return s.findOne(ctx, bson.M{"urlImagen": url})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.Image, error) {
	var doc mongoImage
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	return doc.toImage(), nil
}

func (s *MongoStore) Create(ctx context.Context, img models.Image) (*models.Image, error) {
	if img.Date.IsZero() {
		img.Date = time.Now()
	}

	doc := mongoImage{OID: bson.NewObjectID(), Image: img}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateURL
		}
		return nil, fmt.Errorf("insert image: %w", err)
	}
	return doc.toImage(), nil
}

func (s *MongoStore) Update(ctx context.Context, id string, upd models.ImageUpdate) (*models.Image, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if len(set) == 0 {
		return s.findOne(ctx, bson.M{"_id": oid})
	}

	var doc mongoImage
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	return doc.toImage(), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete image: %w", err)
	}
	return res.DeletedCount > 0, nil
}
