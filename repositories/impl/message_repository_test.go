package impl

import (
	"ClassFeed/config"
	"ClassFeed/models"
	"ClassFeed/repositories"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

var (
	ctx      = context.Background()
	feedA    = repositories.MessageFilter{Course: "C1", Class: "A"}
	baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
)

func seed(t *testing.T, repo *MessageRepositoryImpl, m models.Message) models.Message {
	t.Helper()
	require.NoError(t, repo.Create(ctx, &m))
	return m
}

func at(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}

func TestCreateAndFindByIDPreloadsAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	require.NoError(t, db.Create(&models.User{ID: 3, Name: "Ann", TwitterUsername: "ann", TwitterToken: "secret"}).Error)

	created := seed(t, repo, models.Message{UserID: 3, Course: "C1", Class: "A", Segment: 1, Text: "hi"})

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", found.Text)
	require.NotNil(t, found.User)
	assert.Equal(t, "Ann", found.User.Name)
	assert.False(t, found.Created.IsZero())
	assert.Empty(t, found.Tweet)
}

func TestFindByIDMissingIsNotFound(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))

	_, err := repo.FindByID(ctx, 42)

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCountsAreScopedByCourseClassAndSegment(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 1})
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 2})
	seed(t, repo, models.Message{UserID: 2, Course: "C1", Class: "A", Segment: 2})
	seed(t, repo, models.Message{UserID: 2, Course: "C1", Class: "B", Segment: 2})
	seed(t, repo, models.Message{UserID: 2, Course: "C2", Class: "A", Segment: 2})

	count, err := repo.CountInSegment(ctx, feedA, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	counts, err := repo.CountBySegment(ctx, feedA)
	require.NoError(t, err)
	assert.Equal(t, []models.SegmentCount{{Segment: 1, Count: 1}, {Segment: 2, Count: 2}}, counts)
}

func TestListTopLevelInRange(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	late := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 2, Created: at(5)})
	early := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 3, Created: at(1)})
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 4, Created: at(2)})
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 0, Created: at(2)})
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 2, ParentID: &late.ID, Created: at(6)})
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "B", Segment: 2, Created: at(3)})

	messages, err := repo.ListTopLevelInRange(ctx, feedA, 1, 3, 100)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, early.ID, messages[0].ID)
	assert.Equal(t, late.ID, messages[1].ID)
	for _, m := range messages {
		assert.Nil(t, m.ParentID)
		assert.GreaterOrEqual(t, m.Segment, 1)
		assert.LessOrEqual(t, m.Segment, 3)
	}
}

func TestListTopLevelInRangeHonoursLimit(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	for i := 0; i < 5; i++ {
		seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 1, Created: at(i)})
	}

	messages, err := repo.ListTopLevelInRange(ctx, feedA, 0, 10, 3)

	require.NoError(t, err)
	assert.Len(t, messages, 3)
}

func TestLatestTopLevelInSegment(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 2, Text: "old", Created: at(1)})
	newest := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 2, Text: "new", Created: at(3)})
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Segment: 2, ParentID: &newest.ID, Text: "reply", Created: at(4)})

	latest, err := repo.LatestTopLevelInSegment(ctx, feedA, 2)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.Text)

	_, err = repo.LatestTopLevelInSegment(ctx, feedA, 3)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestListByAuthorsNewestFirst(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	first := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Created: at(1)})
	second := seed(t, repo, models.Message{UserID: 2, Course: "C1", Class: "A", Created: at(2)})
	seed(t, repo, models.Message{UserID: 3, Course: "C1", Class: "A", Created: at(3)})
	seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "B", Created: at(4)})

	messages, err := repo.ListByAuthors(ctx, feedA, []uint{1, 2}, 100)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, first.ID, messages[1].ID)

	none, err := repo.ListByAuthors(ctx, feedA, nil, 100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListByClassIncludesReplies(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	parent := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Created: at(1)})
	seed(t, repo, models.Message{UserID: 2, Course: "C1", Class: "A", ParentID: &parent.ID, Created: at(2)})
	seed(t, repo, models.Message{UserID: 2, Course: "C2", Class: "A", Created: at(3)})

	messages, err := repo.ListByClass(ctx, feedA, 100)

	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestAppendLikeAllowsDuplicates(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	m := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A"})

	for _, user := range []uint{4, 4, 5} {
		require.NoError(t, repo.AppendLike(ctx, m.ID, user))
	}

	found, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, found.Likes, 3)
	assert.Equal(t, uint(4), found.Likes[0].UserID)
	assert.Equal(t, uint(4), found.Likes[1].UserID)
	assert.Equal(t, uint(5), found.Likes[2].UserID)
}

func TestAppendReplyKeepsOrder(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	parent := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A"})

	require.NoError(t, repo.AppendReply(ctx, parent.ID, 20))
	require.NoError(t, repo.AppendReply(ctx, parent.ID, 10))

	found, err := repo.FindByID(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, found.Replies, 2)
	assert.Equal(t, uint(20), found.Replies[0].ReplyID)
	assert.Equal(t, uint(10), found.Replies[1].ReplyID)
}

func TestUpdateText(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	m := seed(t, repo, models.Message{UserID: 1, Course: "C1", Class: "A", Text: "hi"})

	require.NoError(t, repo.UpdateText(ctx, m.ID, "@bob hi"))
	found, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "@bob hi", found.Text)

	assert.ErrorIs(t, repo.UpdateText(ctx, 999, "x"), repositories.ErrNotFound)
}

func TestClassroomAndUserLookups(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Classroom{Course: "C1", Class: "A", UserID: 9, Students: []uint{1, 2}}).Error)
	require.NoError(t, db.Create(&models.User{ID: 9, Name: "Teacher", Role: models.RoleTeacher}).Error)

	classroom, err := NewClassroomRepository(db).FindForTeacher(ctx, "C1", "A", 9)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, []uint(classroom.Students))

	_, err = NewClassroomRepository(db).FindForTeacher(ctx, "C1", "B", 9)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	user, err := NewUserRepository(db).FindByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)

	_, err = NewUserRepository(db).FindByID(ctx, 10)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
