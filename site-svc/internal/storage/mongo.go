package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contactsCollection = "contacts"

type contactDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Subject   string             `bson:"subject"`
	Message   string             `bson:"message"`
	Rating    int                `bson:"rating,omitempty"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d contactDocument) toDomain() domain.Contact {
	return domain.Contact{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Subject:   d.Subject,
		Message:   d.Message,
		Rating:    d.Rating,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
	}
}

// MongoContactRepository stores contact form submissions in MongoDB.
type MongoContactRepository struct {
	Collection *mongo.Collection
}

func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{Collection: db.Collection(contactsCollection)}
}

func (r *MongoContactRepository) CreateContact(ctx context.Context, contact *domain.Contact) error {
	doc := contactDocument{
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Subject:   contact.Subject,
		Message:   contact.Message,
		Rating:    contact.Rating,
		Status:    contact.Status,
		CreatedAt: contact.CreatedAt,
	}
	res, err := r.Collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		contact.ID = id.Hex()
	}
	return nil
}

func (r *MongoContactRepository) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, service.ErrNotFound
	}

	var doc contactDocument
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	contact := doc.toDomain()
	return &contact, nil
}

func (r *MongoContactRepository) ListContacts(ctx context.Context, status string) ([]domain.Contact, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []contactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	contacts := make([]domain.Contact, 0, len(docs))
	for _, doc := range docs {
		contacts = append(contacts, doc.toDomain())
	}
	return contacts, nil
}

func (r *MongoContactRepository) UpdateContactStatus(ctx context.Context, id, status string) (*domain.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, service.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc contactDocument
	err = r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	contact := doc.toDomain()
	return &contact, nil
}

func (r *MongoContactRepository) DeleteContact(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return service.ErrNotFound
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return service.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return service.ErrNotFound
	}
	return err
}

var _ service.ContactRepository = (*MongoContactRepository)(nil)
