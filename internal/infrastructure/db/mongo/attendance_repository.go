package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staffdesk/attendance-system/internal/core/domain"
	"github.com/staffdesk/attendance-system/internal/core/ports"
)

const attendanceCollection = "attendance"

// AttendanceRepository persists attendance records. An open session is a
// document with a null check_out_time; the close is a conditional update so
// two racing check-outs cannot both close the same record.
type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(attendanceCollection)}
}

// EnsureIndexes backs the latest-open lookup and per-user listing.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "check_in_time", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("create attendance index: %w", err)
	}
	return nil
}

type mongoAttendance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	CheckInTime  time.Time          `bson:"check_in_time"`
	CheckOutTime *time.Time         `bson:"check_out_time"`
	WorkingHours *float64           `bson:"working_hours"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (ma *mongoAttendance) toDomain() *domain.AttendanceRecord {
	return &domain.AttendanceRecord{
		ID:           ma.ID.Hex(),
		UserID:       ma.UserID,
		CheckInTime:  ma.CheckInTime,
		CheckOutTime: ma.CheckOutTime,
		WorkingHours: ma.WorkingHours,
		CreatedAt:    ma.CreatedAt,
	}
}

func (r *AttendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	doc := mongoAttendance{
		UserID:      rec.UserID,
		CheckInTime: rec.CheckInTime,
		CreatedAt:   rec.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindLatestOpen orders by check-in time descending and breaks ties on _id
// descending, so the newest-created record wins.
func (r *AttendanceRepository) FindLatestOpen(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	opts := options.FindOne().SetSort(bson.D{
		{Key: "check_in_time", Value: -1},
		{Key: "_id", Value: -1},
	})

	var ma mongoAttendance
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "check_out_time": nil}, opts).Decode(&ma)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoOpenSession
		}
		return nil, fmt.Errorf("find open session: %w", err)
	}
	return ma.toDomain(), nil
}

// CloseSession closes the record only if it is still open. The open-session
// filter is the optimistic-concurrency check: when another check-out already
// closed the record the update matches nothing and ErrNoOpenSession is
// returned.
func (r *AttendanceRepository) CloseSession(ctx context.Context, recordID string, checkOut time.Time, hours float64) (*domain.AttendanceRecord, error) {
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return nil, domain.ErrNoOpenSession
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"check_out_time": checkOut,
		"working_hours":  hours,
	}}

	var ma mongoAttendance
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "check_out_time": nil}, update, opts).Decode(&ma)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoOpenSession
		}
		return nil, fmt.Errorf("close session: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *AttendanceRepository) List(ctx context.Context, filter ports.ListAttendanceFilter) ([]*domain.AttendanceRecord, error) {
	query := bson.M{}
	created := bson.M{}
	if !filter.CreatedFrom.IsZero() {
		created["$gte"] = filter.CreatedFrom
	}
	if !filter.CreatedTo.IsZero() {
		created["$lte"] = filter.CreatedTo
	}
	if len(created) > 0 {
		query["created_at"] = created
	}
	return r.list(ctx, query)
}

func (r *AttendanceRepository) list(ctx context.Context, query bson.M) ([]*domain.AttendanceRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "check_in_time", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer cur.Close(ctx)

	var records []*domain.AttendanceRecord
	for cur.Next(ctx) {
		var ma mongoAttendance
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		records = append(records, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
