package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	// sqlite驱动
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
)

// SQLiteRecorder 将放行事件与采样写入sqlite数据库
type SQLiteRecorder struct {
	*sql.DB
	releaseStatement *sql.Stmt
	sampleStatement  *sql.Stmt

	dbName    string
	batchSize int

	mtx             sync.Mutex
	releasesToWrite []entity.ReleaseEvent
	samplesToWrite  []Sample
}

// NewSQLiteRecorder 创建sqlite记录器
// 参数：path-数据库文件名（不含.sqlite3后缀），为空时自动生成
func NewSQLiteRecorder(path string) *SQLiteRecorder {
	r := &SQLiteRecorder{
		dbName:    path,
		batchSize: defaultBatchSize,
	}
	atexit.Register(func() {
		if err := r.Flush(); err != nil {
			log.Errorf("flush on exit: %v", err)
		}
	})
	return r
}

// Init 创建数据库文件、表与预编译语句
// 说明：数据库文件已存在时返回错误，避免混入上一次运行的数据
func (r *SQLiteRecorder) Init() (err error) {
	if r.dbName == "" {
		r.dbName = "junction_" + xid.New().String()
	}
	filename := r.dbName + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return err
	}
	r.DB = db
	defer func() {
		if err != nil {
			_ = r.DB.Close()
			r.DB = nil
			_ = os.Remove(filename)
		}
	}()
	log.Infof("events are recorded in %s", filename)

	for _, q := range []string{
		`CREATE TABLE IF NOT EXISTS releases
		(
			tick        INTEGER NOT NULL,
			vehicle_id  VARCHAR(32) NOT NULL,
			road        VARCHAR(1) NOT NULL,
			lane        INTEGER NOT NULL,
			destination VARCHAR(1) NOT NULL,
			waited      INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS releases_tick_index ON releases (tick);`,
		`CREATE INDEX IF NOT EXISTS releases_road_index ON releases (road);`,
		`CREATE TABLE IF NOT EXISTS samples
		(
			tick  INTEGER NOT NULL,
			mode  VARCHAR(16) NOT NULL,
			green VARCHAR(1) NOT NULL,
			lane  VARCHAR(4) NOT NULL,
			count INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS samples_tick_index ON samples (tick);`,
	} {
		if _, err := r.Exec(q); err != nil {
			return fmt.Errorf("execute %q: %w", q, err)
		}
	}

	if r.releaseStatement, err = r.Prepare(
		`INSERT INTO releases (tick, vehicle_id, road, lane, destination, waited) VALUES (?, ?, ?, ?, ?, ?)`,
	); err != nil {
		return err
	}
	if r.sampleStatement, err = r.Prepare(
		`INSERT INTO samples (tick, mode, green, lane, count) VALUES (?, ?, ?, ?, ?)`,
	); err != nil {
		return err
	}
	return nil
}

// RecordRelease 缓存一条放行事件，缓冲满时落盘
func (r *SQLiteRecorder) RecordRelease(e entity.ReleaseEvent) {
	r.mtx.Lock()
	r.releasesToWrite = append(r.releasesToWrite, e)
	full := len(r.releasesToWrite) >= r.batchSize
	r.mtx.Unlock()
	if full {
		if err := r.Flush(); err != nil {
			log.Errorf("flush: %v", err)
		}
	}
}

// RecordSample 缓存一次采样，缓冲满时落盘
func (r *SQLiteRecorder) RecordSample(s Sample) {
	r.mtx.Lock()
	r.samplesToWrite = append(r.samplesToWrite, s)
	full := len(r.samplesToWrite) >= r.batchSize
	r.mtx.Unlock()
	if full {
		if err := r.Flush(); err != nil {
			log.Errorf("flush: %v", err)
		}
	}
}

// Flush 在一个事务中写入全部缓冲
func (r *SQLiteRecorder) Flush() error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.DB == nil || (len(r.releasesToWrite) == 0 && len(r.samplesToWrite) == 0) {
		return nil
	}

	tx, err := r.Begin()
	if err != nil {
		return err
	}
	releaseStmt := tx.Stmt(r.releaseStatement)
	for _, e := range r.releasesToWrite {
		if _, err := releaseStmt.Exec(
			e.Tick, e.VehicleID, e.Road.String(), int32(e.Lane), e.Destination.String(), e.Waited,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert release %+v: %w", e, err)
		}
	}
	sampleStmt := tx.Stmt(r.sampleStatement)
	for _, s := range r.samplesToWrite {
		for lane, count := range s.Counts {
			if _, err := sampleStmt.Exec(s.Tick, s.Mode, s.Green, lane, count); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert sample at tick %d: %w", s.Tick, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	r.releasesToWrite = nil
	r.samplesToWrite = nil
	return nil
}

// Close 写入缓冲并关闭数据库
func (r *SQLiteRecorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.DB == nil {
		return nil
	}
	err := r.DB.Close()
	r.DB = nil
	return err
}
