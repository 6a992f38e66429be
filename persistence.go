package brainfuck

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	cp "github.com/jinzhu/copier"
	"github.com/xrash/smetrics"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// RunRecord is one ledger row per executed program: the source, the
// outcome, and the machine configuration that produced it.
type RunRecord struct {
	ID                           uint
	Source                       string
	Survived                     byte
	MachineError                 *string
	InstructionsExecuted         uint
	OutputBytes                  uint
	MaxInstructionExecutionCount uint
	MemoryCellCount              uint
	CreatedAt                    time.Time
}

// NewRunRecord snapshots a finished run. The machine config is copied
// field-by-field into the record so later config changes can't rewrite
// history.
func NewRunRecord(source string, machine *Machine, runErr error, outputBytes uint) *RunRecord {
	record := &RunRecord{
		Source:               source,
		Survived:             1,
		InstructionsExecuted: machine.InstructionCount,
		OutputBytes:          outputBytes,
	}

	if err := cp.Copy(record, machine.Config); err != nil {
		log.Printf("Failed to copy machine config into run record: %v", err)
	}
	if machine.Config.MemoryConfig != nil {
		record.MemoryCellCount = machine.Config.MemoryConfig.CellCount
	}

	if runErr != nil {
		record.Survived = 0
		msg := runErr.Error()
		record.MachineError = &msg
	}

	return record
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	var pragmas strings.Builder
	pragma_count := len(config.SQLitePragmas) - 1
	for i, prag := range config.SQLitePragmas {
		pragmas.WriteString(fmt.Sprintf("_pragma=%s", prag))
		if i < pragma_count {
			pragmas.WriteRune('&')
		}
	}

	var options strings.Builder
	option_count := len(config.SQLiteOptions) - 1
	for i, opt := range config.SQLiteOptions {
		options.WriteString(opt)
		if i < option_count {
			options.WriteRune('&')
		}
	}

	var path strings.Builder
	path.WriteString(filepath.Join(config.Path, config.Name))
	if pragmas.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(pragmas.String())
		if options.Len() > 0 {
			path.WriteRune('&')
			path.WriteString(options.String())
		}
	} else if options.Len() > 0 {
		path.WriteRune('?')
		path.WriteString(options.String())
	}

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 1000})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	if err := p.DB.AutoMigrate(
		&RunRecord{},
	); err != nil {
		return err
	}

	return nil
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

func (p *Persistence) CreateRun(record *RunRecord) (uint, error) {
	if record == nil {
		return 0, fmt.Errorf("RunRecord cannot be nil")
	}

	if result := p.DB.Create(record); result.Error != nil {
		return 0, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}

	return record.ID, nil
}

func (p *Persistence) RecentRuns(limit int) ([]*RunRecord, error) {
	var records []*RunRecord
	if result := p.DB.Order("created_at desc, id desc").Limit(limit).Find(&records); result.Error != nil {
		return nil, fmt.Errorf("Failed to query recent runs: %w", result.Error)
	}
	return records, nil
}

// SimilarRuns returns recorded runs whose source is within maxDist edit
// operations of source, nearest first. The distance is computed in
// process over a table scan; the ledger is small and SQLite has no
// edit-distance function to push this down to.
func (p *Persistence) SimilarRuns(source string, maxDist int, limit int) ([]*RunRecord, error) {
	var records []*RunRecord
	if result := p.DB.Order("created_at desc, id desc").Find(&records); result.Error != nil {
		return nil, fmt.Errorf("Failed to query runs: %w", result.Error)
	}

	type scored struct {
		record *RunRecord
		dist   int
	}

	matches := []scored{}
	for _, record := range records {
		dist := smetrics.WagnerFischer(source, record.Source, 1, 1, 2)
		if dist <= maxDist {
			matches = append(matches, scored{record, dist})
		}
	}

	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].dist < matches[j-1].dist; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	results := []*RunRecord{}
	for _, match := range matches {
		if limit > 0 && len(results) >= limit {
			break
		}
		results = append(results, match.record)
	}

	return results, nil
}
