package recorder

import (
	"context"
	"sync"

	"github.com/rs/xid"
	"github.com/samber/lo"
	"github.com/tebeka/atexit"
	"github.com/tsinghua-fib-lab/junction-sim/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// releaseDoc 放行事件在MongoDB中的文档结构
type releaseDoc struct {
	Tick        int64  `bson:"tick"`
	VehicleID   string `bson:"vehicle_id"`
	Road        string `bson:"road"`
	Lane        int32  `bson:"lane"`
	Destination string `bson:"destination"`
	Waited      int64  `bson:"waited"`
}

// MongoRecorder 将放行事件与采样写入MongoDB
type MongoRecorder struct {
	client   *mongo.Client
	releases *mongo.Collection
	samples  *mongo.Collection
	uri      string
	dbName   string

	batchSize int

	mtx             sync.Mutex
	releasesToWrite []any
	samplesToWrite  []any
}

// NewMongoRecorder 创建MongoDB记录器
// 参数：uri-连接字符串，dbName-数据库名，为空时自动生成
func NewMongoRecorder(uri, dbName string) *MongoRecorder {
	r := &MongoRecorder{
		uri:       uri,
		dbName:    dbName,
		batchSize: defaultBatchSize,
	}
	atexit.Register(func() {
		if err := r.Flush(); err != nil {
			log.Errorf("flush on exit: %v", err)
		}
	})
	return r
}

// Init 连接数据库并创建索引
func (r *MongoRecorder) Init(ctx context.Context) (err error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(r.uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}
	r.client = client
	defer func() {
		if err != nil {
			_ = client.Disconnect(context.Background())
			r.client = nil
		}
	}()
	if r.dbName == "" {
		r.dbName = "junction_" + xid.New().String()
	}
	log.Infof("events are recorded in database %s", r.dbName)
	db := client.Database(r.dbName)
	r.releases = db.Collection("releases")
	r.samples = db.Collection("samples")

	for _, idx := range []struct {
		col *mongo.Collection
		key string
	}{
		{r.releases, "tick"},
		{r.releases, "road"},
		{r.samples, "tick"},
	} {
		if _, err := idx.col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{bson.E{Key: idx.key, Value: 1}},
		}); err != nil {
			return err
		}
	}
	return nil
}

// RecordRelease 缓存一条放行事件，缓冲满时落盘
func (r *MongoRecorder) RecordRelease(e entity.ReleaseEvent) {
	r.mtx.Lock()
	r.releasesToWrite = append(r.releasesToWrite, releaseDoc{
		Tick:        e.Tick,
		VehicleID:   e.VehicleID,
		Road:        e.Road.String(),
		Lane:        int32(e.Lane),
		Destination: e.Destination.String(),
		Waited:      e.Waited,
	})
	full := len(r.releasesToWrite) >= r.batchSize
	r.mtx.Unlock()
	if full {
		if err := r.Flush(); err != nil {
			log.Errorf("flush: %v", err)
		}
	}
}

// RecordSample 缓存一次采样，缓冲满时落盘
func (r *MongoRecorder) RecordSample(s Sample) {
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

// Flush 批量写入缓冲
func (r *MongoRecorder) Flush() error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	for _, batch := range []struct {
		col  *mongo.Collection
		docs *[]any
	}{
		{r.releases, &r.releasesToWrite},
		{r.samples, &r.samplesToWrite},
	} {
		col := batch.col
		if err := flushDocs(batch.docs, r.batchSize, func(chunk []any) error {
			_, err := col.InsertMany(ctx, chunk)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

// flushDocs 按批写入缓冲，每批写入成功后即从缓冲中移除
// 说明：写入失败时返回错误，失败的批次及其后的文档留在缓冲中等待下一次Flush
func flushDocs(docs *[]any, batchSize int, insert func(chunk []any) error) error {
	for _, chunk := range lo.Chunk(*docs, batchSize) {
		if err := insert(chunk); err != nil {
			return err
		}
		*docs = (*docs)[len(chunk):]
	}
	*docs = nil
	return nil
}

// Close 写入缓冲并断开连接
func (r *MongoRecorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.client == nil {
		return nil
	}
	err := r.client.Disconnect(context.Background())
	r.client = nil
	return err
}
