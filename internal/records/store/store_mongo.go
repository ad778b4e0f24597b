package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"applicant-records/internal/records/models"
)

// MongoCollection reads one MongoDB collection.
type MongoCollection[T any] struct {
	coll *mongo.Collection
}

func NewMongoCollection[T any](db *mongo.Database, name models.Collection) *MongoCollection[T] {
	return &MongoCollection[T]{coll: db.Collection(name.String())}
}

func (c *MongoCollection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	query := bson.M{}
	if filter.Filtered() {
		query["applicantId"] = filter.ApplicantID
	}
	cursor, err := c.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return docs, nil
}

// MongoNoteStore is the notes collection backed by MongoDB.
type MongoNoteStore struct {
	*MongoCollection[models.Note]
}

func NewMongoNoteStore(db *mongo.Database) *MongoNoteStore {
	return &MongoNoteStore{MongoCollection: NewMongoCollection[models.Note](db, models.CollectionNotes)}
}

func (s *MongoNoteStore) Insert(ctx context.Context, note *models.Note) error {
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *MongoNoteStore) UpdateContent(ctx context.Context, noteID, content string) (UpdateResult, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"noteId": noteID},
		bson.M{"$set": bson.M{"content": content}},
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update note: %w", err)
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (s *MongoNoteStore) Delete(ctx context.Context, noteID string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"noteId": noteID})
	if err != nil {
		return 0, fmt.Errorf("delete note: %w", err)
	}
	return res.DeletedCount, nil
}

// NewMongoRecords binds every collection to db. health is typically the
// owning client's ping.
func NewMongoRecords(db *mongo.Database, health func(context.Context) error) Records {
	return Records{
		PersonalInfo:   NewMongoCollection[models.PersonalInfo](db, models.CollectionPersonalInfo),
		WorkExperience: NewMongoCollection[models.WorkExperience](db, models.CollectionWorkExperience),
		Education:      NewMongoCollection[models.Education](db, models.CollectionEducation),
		Skills:         NewMongoCollection[models.Skill](db, models.CollectionSkills),
		Notes:          NewMongoNoteStore(db),
		Health:         health,
	}
}

var _ NoteStore = (*MongoNoteStore)(nil)
