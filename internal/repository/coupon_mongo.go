package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/contoso-pizza-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CouponCollection is the MongoDB collection holding coupons
const CouponCollection = "coupons"

// couponDocument is the stored form of a coupon; the numeric id is the document _id
type couponDocument struct {
	ID          uint      `bson:"_id"`
	Expiration  time.Time `bson:"expiration"`
	Description string    `bson:"description"`
}

func (d couponDocument) toModel() models.Coupon {
	return models.Coupon{ID: d.ID, Expiration: d.Expiration.UTC(), Description: d.Description}
}

type mongoCouponRepository struct {
	collection *mongo.Collection
}

// NewMongoCouponRepository reads coupons from the coupons collection of db
func NewMongoCouponRepository(db *mongo.Database) CouponRepository {
	return &mongoCouponRepository{collection: db.Collection(CouponCollection)}
}

// ConnectMongo opens a client for uri and verifies it with a ping
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func (r *mongoCouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoCouponRepository) ListActive(ctx context.Context, now time.Time) ([]models.Coupon, error) {
	return r.find(ctx, bson.M{"expiration": bson.M{"$gt": now}})
}

func (r *mongoCouponRepository) GetByID(ctx context.Context, id uint) (models.Coupon, error) {
	var doc couponDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Coupon{}, fmt.Errorf("%w: %d", ErrCouponNotFound, id)
	}
	if err != nil {
		return models.Coupon{}, fmt.Errorf("load coupon %d: %w", id, err)
	}
	return doc.toModel(), nil
}

func (r *mongoCouponRepository) find(ctx context.Context, filter bson.M) ([]models.Coupon, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	var docs []couponDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode coupons: %w", err)
	}

	coupons := make([]models.Coupon, 0, len(docs))
	for _, doc := range docs {
		coupons = append(coupons, doc.toModel())
	}
	return coupons, nil
}
