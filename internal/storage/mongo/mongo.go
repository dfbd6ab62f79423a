package mongo

import (
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"tableBooker/internal/config"
	"tableBooker/internal/models"
	"tableBooker/internal/storage"
	"time"
)

type Storage struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type weatherDocument struct {
	Temp        float64 `bson:"temp"`
	Description string  `bson:"description"`
}

type bookingDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	CustomerName      string             `bson:"customer_name"`
	NumberOfGuests    int                `bson:"number_of_guests"`
	BookingDate       string             `bson:"booking_date"`
	BookingTime       string             `bson:"booking_time"`
	CuisinePreference string             `bson:"cuisine_preference,omitempty"`
	SpecialRequests   string             `bson:"special_requests,omitempty"`
	WeatherInfo       *weatherDocument   `bson:"weather_info,omitempty"`
	SeatingPreference string             `bson:"seating_preference"`
	Status            string             `bson:"status"`
	CreatedAt         time.Time          `bson:"created_at"`
}

func New(ctx context.Context, cfg config.Mongo) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("cannot create index: %w", err)
	}

	return &Storage{client: client, collection: collection}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) SaveBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	const op = "storage.mongo.SaveBooking"

	doc := toDocument(b)
	doc.ID = primitive.NewObjectID()
	// BSON datetimes hold milliseconds
	doc.CreatedAt = doc.CreatedAt.UTC().Truncate(time.Millisecond)

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toModel(), nil
}

func (s *Storage) Bookings(ctx context.Context) ([]models.Booking, error) {
	const op = "storage.mongo.Bookings"

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var docs []bookingDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toModel())
	}

	return bookings, nil
}

func (s *Storage) Booking(ctx context.Context, id string) (models.Booking, error) {
	const op = "storage.mongo.Booking"

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrInvalidID)
	}

	var doc bookingDocument
	err = s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: objID}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toModel(), nil
}

func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	const op = "storage.mongo.DeleteBooking"

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidID)
	}

	res, err := s.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: objID}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}

func toDocument(b models.Booking) bookingDocument {
	doc := bookingDocument{
		CustomerName:      b.CustomerName,
		NumberOfGuests:    b.NumberOfGuests,
		BookingDate:       b.BookingDate,
		BookingTime:       b.BookingTime,
		CuisinePreference: b.CuisinePreference,
		SpecialRequests:   b.SpecialRequests,
		SeatingPreference: string(b.SeatingPreference),
		Status:            string(b.Status),
		CreatedAt:         b.CreatedAt,
	}

	if b.WeatherInfo != nil {
		doc.WeatherInfo = &weatherDocument{
			Temp:        b.WeatherInfo.Temp,
			Description: b.WeatherInfo.Description,
		}
	}

	return doc
}

func (d bookingDocument) toModel() models.Booking {
	b := models.Booking{
		ID:                d.ID.Hex(),
		CustomerName:      d.CustomerName,
		NumberOfGuests:    d.NumberOfGuests,
		BookingDate:       d.BookingDate,
		BookingTime:       d.BookingTime,
		CuisinePreference: d.CuisinePreference,
		SpecialRequests:   d.SpecialRequests,
		SeatingPreference: models.SeatingPreference(d.SeatingPreference),
		Status:            models.BookingStatus(d.Status),
		CreatedAt:         d.CreatedAt.UTC(),
	}

	if d.WeatherInfo != nil {
		b.WeatherInfo = &models.WeatherInfo{
			Temp:        d.WeatherInfo.Temp,
			Description: d.WeatherInfo.Description,
		}
	}

	return b
}
