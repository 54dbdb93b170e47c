package gravnav

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Episode is one recorded run of a vehicle, from reset to its terminal state (or
// to shutdown for runs that never terminate).
type Episode struct {
	gorm.Model
	VehicleID    string `gorm:"size:64;index:idx_vehicle"`
	Mode         string `gorm:"size:16"`
	InitRadius   float64
	TargetRadius float64
	Steps        int
	FinalRadius  float64
	FinalEnergy  float64
	TotalReward  float64
	Escaped      bool `gorm:"default:false"`
	Collided     bool `gorm:"default:false"`
	StartedAt    time.Time
	EndedAt      time.Time
	Samples      []Sample `gorm:"foreignkey:EpisodeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Sample is one state sample within an episode.
type Sample struct {
	ID        uint `gorm:"primarykey"`
	EpisodeID uint `gorm:"index:idx_episode"`
	Tick      int
	X         float64
	Y         float64
	VX        float64
	VY        float64
	Heading   float64
	Action    float64
	Reward    float64
}

// EpisodeStore persists episodes to a local SQLite database.
type EpisodeStore struct {
	db *gorm.DB
}

// OpenEpisodeStore opens the database at path and migrates the schema. The
// special path "file::memory:?cache=shared" keeps the store purely in memory.
func OpenEpisodeStore(path string) (*EpisodeStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        2000,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open episode store: %w", err)
	}
	if err = db.AutoMigrate(&Episode{}, &Sample{}); err != nil {
		return nil, fmt.Errorf("migrate episode store: %w", err)
	}
	return &EpisodeStore{db: db}, nil
}

// SaveEpisode inserts an episode and its samples in one batch.
func (s *EpisodeStore) SaveEpisode(ep *Episode) error {
	return s.db.Create(ep).Error
}

// Episodes returns the recorded episodes of a vehicle, most recent first. Samples
// are not loaded.
func (s *EpisodeStore) Episodes(vehicleID string) ([]Episode, error) {
	var eps []Episode
	err := s.db.Where("vehicle_id = ?", vehicleID).Order("id desc").Find(&eps).Error
	return eps, err
}

// EpisodeSamples returns the samples of one episode in tick order.
func (s *EpisodeStore) EpisodeSamples(episodeID uint) ([]Sample, error) {
	var samples []Sample
	err := s.db.Where("episode_id = ?", episodeID).Order("tick asc").Find(&samples).Error
	return samples, err
}

// Close releases the underlying database handle.
func (s *EpisodeStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
