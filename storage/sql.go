package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tydonelson/ranked-choice/logging"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQL connects GORM to a sqlite or mysql database and migrates the
// poll and ballot tables.
func OpenSQL(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		logging.Log.Errorf("STORAGE: failed to open %s database: %v", driver, err)
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Poll{}, &Ballot{}); err != nil {
		logging.Log.Errorf("STORAGE: migration failed: %v", err)
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

type GormPollStorage struct {
	DB *gorm.DB
}

func (s *GormPollStorage) Get(ctx context.Context, id string) (*Poll, error) {
	var poll Poll
	err := s.DB.WithContext(ctx).First(&poll, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Log.Warnf("POLL: no poll found with ID %s", id)
		return nil, ErrPollNotFound
	}
	if err != nil {
		logging.Log.Errorf("POLL: select for ID %s failed: %v", id, err)
		return nil, err
	}
	return &poll, nil
}

func (s *GormPollStorage) GetAll(ctx context.Context) ([]*Poll, error) {
	var polls []*Poll
	if err := s.DB.WithContext(ctx).Order("created_at").Find(&polls).Error; err != nil {
		logging.Log.Errorf("POLL: select all failed: %v", err)
		return nil, err
	}
	return polls, nil
}

func (s *GormPollStorage) Create(ctx context.Context, poll *Poll) error {
	err := s.DB.WithContext(ctx).Create(poll).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		logging.Log.Warnf("POLL: item with ID %s already exists", poll.ID)
		return ErrItemWithIDAlreadyExists
	}
	if err != nil {
		logging.Log.Errorf("POLL: failed to create poll: %v", err)
		return err
	}
	return nil
}

func (s *GormPollStorage) Delete(ctx context.Context, id string) error {
	if err := s.DB.WithContext(ctx).Delete(&Poll{}, "id = ?", id).Error; err != nil {
		logging.Log.Errorf("POLL: failed to delete poll with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("POLL: deleted poll with ID %s", id)
	return nil
}

type GormBallotStorage struct {
	DB *gorm.DB
}

func (s *GormBallotStorage) Create(ctx context.Context, ballot *Ballot) error {
	err := s.DB.WithContext(ctx).Create(ballot).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		logging.Log.Warnf("BALLOT: ballot %s already exists for poll %s", ballot.ID, ballot.PollID)
		return ErrItemWithIDAlreadyExists
	}
	if err != nil {
		logging.Log.Errorf("BALLOT: failed to create ballot: %v", err)
		return err
	}
	return nil
}

func (s *GormBallotStorage) GetByPoll(ctx context.Context, pollID string) ([]*Ballot, error) {
	ballots := make([]*Ballot, 0)
	err := s.DB.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("voted_at, id").
		Find(&ballots).Error
	if err != nil {
		logging.Log.Errorf("BALLOT: failed to select ballots for poll %s: %v", pollID, err)
		return nil, err
	}
	return ballots, nil
}

func (s *GormBallotStorage) DeleteByPoll(ctx context.Context, pollID string) (int, error) {
	res := s.DB.WithContext(ctx).Where("poll_id = ?", pollID).Delete(&Ballot{})
	if res.Error != nil {
		logging.Log.Errorf("BALLOT: failed to delete ballots for poll %s: %v", pollID, res.Error)
		return 0, res.Error
	}
	logging.Log.Infof("BALLOT: deleted %d ballots for poll %s", res.RowsAffected, pollID)
	return int(res.RowsAffected), nil
}
