package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client to the given MongoDB deployment and verifies it with a ping
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// MongoProductRepository implements ProductRepository on a MongoDB collection
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a repository backed by the given collection
func NewMongoProductRepository(coll *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{
		coll: coll,
	}
}

// EnsureIndexes creates the indexes used by list filters and sorting
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", r.coll.Name(), err)
	}
	return nil
}

// Find runs a filtered, sorted and projected query
func (r *MongoProductRepository) Find(ctx context.Context, q models.ProductQuery) ([]models.Document, error) {
	opts := options.Find()
	if s := sortDoc(q.Sort); s != nil {
		opts.SetSort(s)
	}
	if p := projectionDoc(q.Fields); p != nil {
		opts.SetProjection(p)
	}

	cursor, err := r.coll.Find(ctx, filterDoc(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	docs := make([]models.Document, 0, len(raw))
	for _, m := range raw {
		doc := models.Document(m)
		if id, ok := doc["_id"]; ok {
			delete(doc, "_id")
			doc["id"] = id
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetByID returns a product by its ID
func (r *MongoProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// Create inserts a product and returns the ID the store assigned
func (r *MongoProductRepository) Create(ctx context.Context, product models.Product) (primitive.ObjectID, error) {
	product.ID = primitive.NilObjectID
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert product: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// Update sets the supplied fields and returns the document as stored after the update
func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, upd models.ProductUpdate) (*models.Product, error) {
	// MongoDB rejects an empty $set
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateDoc(upd)}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id.Hex(), err)
	}
	return &product, nil
}

// Delete removes a product by its ID
func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func filterDoc(q models.ProductQuery) bson.D {
	filter := bson.D{}
	if q.Category != nil {
		filter = append(filter, bson.E{Key: "category", Value: *q.Category})
	}
	if q.MinPrice != nil {
		filter = append(filter, bson.E{Key: "price", Value: bson.D{{Key: "$gte", Value: *q.MinPrice}}})
	}
	return filter
}

func sortDoc(order models.SortOrder) bson.D {
	switch order {
	case models.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case models.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	}
	return nil
}

// projectionDoc includes exactly the named fields. _id is returned by MongoDB
// unless excluded, so it is only kept when asked for as "id" or "_id".
func projectionDoc(fields []string) bson.D {
	if fields == nil {
		return nil
	}

	projection := bson.D{}
	withID := false
	for _, f := range fields {
		if f == "id" || f == "_id" {
			withID = true
			continue
		}
		projection = append(projection, bson.E{Key: f, Value: 1})
	}
	if withID {
		projection = append(projection, bson.E{Key: "_id", Value: 1})
	} else {
		projection = append(projection, bson.E{Key: "_id", Value: 0})
	}
	return projection
}

func updateDoc(upd models.ProductUpdate) bson.D {
	set := bson.D{}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *upd.Price})
	}
	if upd.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *upd.Category})
	}
	return set
}
