package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-rewards-api/internal/config"
	"github.com/yukikurage/task-rewards-api/internal/database"
	"github.com/yukikurage/task-rewards-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store *Store
}

func (suite *RepositoryTestSuite) SetupTest() {
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}, zap.NewNop())
	suite.Require().NoError(err)
	suite.Require().NoError(database.MigrateDatabase(db, zap.NewNop()))

	suite.db = db
	suite.store = NewStore(db)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) createUser(username string) *models.User {
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hashedpassword"}
	suite.Require().NoError(suite.store.Users.Create(user))
	return user
}

func (suite *RepositoryTestSuite) createCard(name string) *models.Card {
	card := &models.Card{Name: name, ImageRef: name + ".png", Rarity: "common", Era: "debut", Group: "solo"}
	suite.Require().NoError(suite.store.Cards.Create(card))
	return card
}

func (suite *RepositoryTestSuite) createTask(userID uint64, name string, due time.Time, completed bool) *models.Task {
	year, week := due.ISOWeek()
	task := &models.Task{
		Name:       name,
		Priority:   models.PriorityMedium,
		DueDate:    due,
		WeekNumber: week,
		WeekYear:   year,
		UserID:     userID,
	}
	suite.Require().NoError(suite.store.Tasks.Create(task))
	if completed {
		suite.Require().NoError(suite.store.Tasks.MarkCompleted(task.ID))
	}
	return task
}

func (suite *RepositoryTestSuite) TestIncrement_CreatesThenIncrements() {
	user := suite.createUser("ada")
	card := suite.createCard("Nova")

	for i := 1; i <= 3; i++ {
		entry, err := suite.store.UserCards.Increment(user.ID, card.ID)
		suite.Require().NoError(err)
		suite.Equal(i, entry.Quantity)
	}

	entries, err := suite.store.UserCards.ListByUser(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(3, entries[0].Quantity)
	suite.Require().NotNil(entries[0].Card)
	suite.Equal("Nova", entries[0].Card.Name)
}

func (suite *RepositoryTestSuite) TestIncrement_Concurrent() {
	user := suite.createUser("ada")
	card := suite.createCard("Nova")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- suite.store.Transaction(func(tx *Store) error {
				_, err := tx.UserCards.Increment(user.ID, card.ID)
				return err
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.Require().NoError(err)
	}

	count, err := suite.store.UserCards.CountByCard(card.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	entry, err := suite.store.UserCards.Find(user.ID, card.ID)
	suite.Require().NoError(err)
	suite.Equal(workers, entry.Quantity)
}

func (suite *RepositoryTestSuite) TestCardDelete_CascadesToCollections() {
	ada := suite.createUser("ada")
	bob := suite.createUser("bob")
	nova := suite.createCard("Nova")
	luna := suite.createCard("Luna")

	for _, userID := range []uint64{ada.ID, bob.ID} {
		_, err := suite.store.UserCards.Increment(userID, nova.ID)
		suite.Require().NoError(err)
		_, err = suite.store.UserCards.Increment(userID, luna.ID)
		suite.Require().NoError(err)
	}

	suite.Require().NoError(suite.store.Cards.Delete(nova.ID))

	count, err := suite.store.UserCards.CountByCard(nova.ID)
	suite.Require().NoError(err)
	suite.Zero(count)

	count, err = suite.store.UserCards.CountByCard(luna.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	ids, err := suite.store.Cards.ListIDs()
	suite.Require().NoError(err)
	suite.Equal([]uint64{luna.ID}, ids)
}

func (suite *RepositoryTestSuite) TestCardDelete_NotFound() {
	err := suite.store.Cards.Delete(999)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestUserDelete_Cascades() {
	ada := suite.createUser("ada")
	bob := suite.createUser("bob")
	card := suite.createCard("Nova")
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.createTask(ada.ID, "Write report", due, false)
	suite.createTask(bob.ID, "Review report", due, false)
	_, err := suite.store.UserCards.Increment(ada.ID, card.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.Users.Delete(ada.ID))

	_, err = suite.store.Users.FindByID(ada.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	tasks, total, err := suite.store.Tasks.List(TaskFilter{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(bob.ID, tasks[0].UserID)

	entries, err := suite.store.UserCards.ListByUser(ada.ID)
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *RepositoryTestSuite) TestTaskList_IncompleteFirst() {
	user := suite.createUser("ada")
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	first := suite.createTask(user.ID, "first", due, true)
	second := suite.createTask(user.ID, "second", due, false)
	third := suite.createTask(user.ID, "third", due, true)
	fourth := suite.createTask(user.ID, "fourth", due, false)

	tasks, total, err := suite.store.Tasks.List(TaskFilter{UserID: &user.ID})
	suite.Require().NoError(err)
	suite.Equal(int64(4), total)

	var ids []uint64
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	suite.Equal([]uint64{second.ID, fourth.ID, first.ID, third.ID}, ids)
}

func (suite *RepositoryTestSuite) TestTaskList_Filters() {
	ada := suite.createUser("ada")
	bob := suite.createUser("bob")
	friday := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	nextYear := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	report := suite.createTask(ada.ID, "report", friday, false)
	suite.createTask(ada.ID, "groceries", monday, false)
	suite.createTask(ada.ID, "taxes", nextYear, false)
	suite.createTask(bob.ID, "other user", friday, false)

	from := friday
	to := friday.Add(24 * time.Hour)
	tasks, _, err := suite.store.Tasks.List(TaskFilter{UserID: &ada.ID, DueDateFrom: &from, DueDateTo: &to})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal(report.ID, tasks[0].ID)

	week := 11
	tasks, _, err = suite.store.Tasks.List(TaskFilter{UserID: &ada.ID, WeekNumber: &week})
	suite.Require().NoError(err)
	suite.Len(tasks, 2)

	year := 2024
	tasks, _, err = suite.store.Tasks.List(TaskFilter{UserID: &ada.ID, WeekNumber: &week, WeekYear: &year})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal(report.ID, tasks[0].ID)
}

func (suite *RepositoryTestSuite) TestTaskList_Pagination() {
	user := suite.createUser("ada")
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"a", "b", "c"} {
		suite.createTask(user.ID, name, due, false)
	}

	tasks, total, err := suite.store.Tasks.List(TaskFilter{UserID: &user.ID, Page: 2, PageSize: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(tasks, 1)
	suite.Equal("c", tasks[0].Name)
}

func (suite *RepositoryTestSuite) TestTransaction_RollsBack() {
	user := suite.createUser("ada")
	card := suite.createCard("Nova")
	task := suite.createTask(user.ID, "report", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false)

	err := suite.store.Transaction(func(tx *Store) error {
		if err := tx.Tasks.MarkCompleted(task.ID); err != nil {
			return err
		}
		if _, err := tx.UserCards.Increment(user.ID, card.ID); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)

	reloaded, err := suite.store.Tasks.FindByID(task.ID)
	suite.Require().NoError(err)
	suite.False(reloaded.Completed)

	_, err = suite.store.UserCards.Find(user.ID, card.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
