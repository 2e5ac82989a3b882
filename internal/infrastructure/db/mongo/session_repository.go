package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soulflow/wellness-platform/internal/core/domain"
	"github.com/soulflow/wellness-platform/internal/core/ports"
)

const sessionsCollection = "sessions"

// SessionRepository persists wellness sessions in the sessions collection.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Tags        []string           `bson:"tags"`
	JSONFileURL string             `bson:"json_file_url"`
	Description string             `bson:"description,omitempty"`
	Duration    int                `bson:"duration"`
	Difficulty  string             `bson:"difficulty"`
	Category    string             `bson:"category"`
	Status      string             `bson:"status"`
	AuthorID    primitive.ObjectID `bson:"author_id"`
	PublishedAt *time.Time         `bson:"published_at,omitempty"`
	LastSaved   time.Time          `bson:"last_saved"`
	Views       int64              `bson:"views"`
	Likes       int64              `bson:"likes"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toMongoSession(s *domain.Session) (*mongoSession, error) {
	authorID, err := primitive.ObjectIDFromHex(s.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q: %w", s.AuthorID, err)
	}

	doc := &mongoSession{
		Title:       s.Title,
		Tags:        s.Tags,
		JSONFileURL: s.JSONFileURL,
		Description: s.Description,
		Duration:    s.Duration,
		Difficulty:  s.Difficulty,
		Category:    s.Category,
		Status:      string(s.Status),
		AuthorID:    authorID,
		PublishedAt: s.PublishedAt,
		LastSaved:   s.LastSaved,
		Views:       s.Views,
		Likes:       s.Likes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.ID != "" {
		oid, err := primitive.ObjectIDFromHex(s.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid session id %q: %w", s.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (ms *mongoSession) toDomain() *domain.Session {
	tags := ms.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Session{
		ID:          ms.ID.Hex(),
		Title:       ms.Title,
		Tags:        tags,
		JSONFileURL: ms.JSONFileURL,
		Description: ms.Description,
		Duration:    ms.Duration,
		Difficulty:  ms.Difficulty,
		Category:    ms.Category,
		Status:      domain.SessionStatus(ms.Status),
		AuthorID:    ms.AuthorID.Hex(),
		PublishedAt: ms.PublishedAt,
		LastSaved:   ms.LastSaved,
		Views:       ms.Views,
		Likes:       ms.Likes,
		CreatedAt:   ms.CreatedAt,
		UpdatedAt:   ms.UpdatedAt,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	doc, err := toMongoSession(s)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Malformed ids behave like absent ones.
		return nil, domain.ErrSessionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	doc, err := toMongoSession(s)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRepository) ListByAuthor(ctx context.Context, filter ports.OwnedFilter) ([]*domain.Session, int64, error) {
	authorID, err := primitive.ObjectIDFromHex(filter.AuthorID)
	if err != nil {
		return nil, 0, domain.ErrSessionNotFound
	}

	query := buildOwnedQuery(authorID, filter.Status)
	sort := bson.D{{Key: "updated_at", Value: -1}}
	return r.list(ctx, query, sort, filter.Page, filter.Limit)
}

func (r *SessionRepository) ListPublished(ctx context.Context, filter ports.PublishedFilter) ([]*domain.Session, int64, error) {
	query := buildPublishedQuery(filter)
	sort := bson.D{{Key: "published_at", Value: -1}}
	return r.list(ctx, query, sort, filter.Page, filter.Limit)
}

func (r *SessionRepository) list(ctx context.Context, query bson.M, sort bson.D, page, limit int) ([]*domain.Session, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}

	skip := int64((page - 1) * limit)
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Session
	for cur.Next(ctx) {
		var ms mongoSession
		if err := cur.Decode(&ms); err != nil {
			return nil, 0, fmt.Errorf("decode session: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	return out, total, cur.Err()
}

// FindPublishedAndIncrementViews bumps the view counter in the same storage
// round trip as the fetch, so concurrent viewers never under-count.
func (r *SessionRepository) FindPublishedAndIncrementViews(ctx context.Context, id string) (*domain.Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.StatusPublished)}
	update := bson.M{"$inc": bson.M{"views": 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoSession
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("increment views: %w", err)
	}
	return ms.toDomain(), nil
}

// EnsureIndexes creates the query indexes on the sessions collection.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "published_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildOwnedQuery builds the filter for an author's own sessions.
func buildOwnedQuery(authorID primitive.ObjectID, status domain.SessionStatus) bson.M {
	query := bson.M{"author_id": authorID}
	if status != "" {
		query["status"] = string(status)
	}
	return query
}

// buildPublishedQuery builds the public catalogue filter. Search matches the
// title or any tag, case-insensitively, with regex metacharacters escaped.
func buildPublishedQuery(filter ports.PublishedFilter) bson.M {
	query := bson.M{"status": string(domain.StatusPublished)}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"tags": re},
		}
	}
	return query
}
