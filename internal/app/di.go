package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/you-humble/pc-builder/internal/config"
	envconfig "github.com/you-humble/pc-builder/internal/config/env"
	filerepo "github.com/you-humble/pc-builder/internal/repository/file"
	memrepo "github.com/you-humble/pc-builder/internal/repository/memory"
	mongorepo "github.com/you-humble/pc-builder/internal/repository/mongo"
	pgrepo "github.com/you-humble/pc-builder/internal/repository/postgres"
	buildsvc "github.com/you-humble/pc-builder/internal/service/build"
	comparesvc "github.com/you-humble/pc-builder/internal/service/compare"
	"github.com/you-humble/pc-builder/internal/snapshot"
	"github.com/you-humble/pc-builder/internal/transport/cli"
	"github.com/you-humble/pc-builder/migrations"
	"github.com/you-humble/pc-builder/platform/closer"
	"github.com/you-humble/pc-builder/platform/db/migrator"
)

type KVRepository interface {
	buildsvc.Repository
	snapshot.Store
}

type SnapshotWriter interface {
	buildsvc.SnapshotWriter
	Close(ctx context.Context) error
}

type BuildService interface {
	cli.BuildService
	Load(ctx context.Context)
	Flush(ctx context.Context) error
}

type CompareService interface {
	cli.CompareService
	Load(ctx context.Context)
	Flush(ctx context.Context) error
}

type di struct {
	mongo      *mongo.Client
	collection *mongo.Collection

	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator

	repository KVRepository
	writer     SnapshotWriter

	buildService   BuildService
	compareService CompareService
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) KVCollection(ctx context.Context) *mongo.Collection {
	if d.collection == nil {
		d.collection = d.MongoDB(ctx).
			Database(config.C().Mongo.DatabaseName()).
			Collection(config.C().Mongo.KVCollection())

		if err := ensureKVIndexes(ctx, d.collection); err != nil {
			panic(fmt.Sprintf("failed to ensure indexes: %v", err))
		}
	}

	return d.collection
}

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			migrations.FS,
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) KVRepository(ctx context.Context) KVRepository {
	if d.repository == nil {
		switch driver := config.C().Storage.Driver(); driver {
		case envconfig.DriverMemory:
			d.repository = memrepo.NewKVRepository()
		case envconfig.DriverFile:
			repo, err := filerepo.NewKVRepository(config.C().File.Dir())
			if err != nil {
				panic(fmt.Sprintf("failed to open storage directory: %v", err))
			}
			d.repository = repo
		case envconfig.DriverMongo:
			d.repository = mongorepo.NewKVRepository(d.KVCollection(ctx))
		case envconfig.DriverPostgres:
			d.repository = pgrepo.NewKVRepository(d.DBPool(ctx))
		default:
			panic(fmt.Sprintf("unknown storage driver %q", driver))
		}
	}

	return d.repository
}

func (d *di) SnapshotWriter(ctx context.Context) SnapshotWriter {
	if d.writer == nil {
		w := snapshot.NewWriter(
			d.KVRepository(ctx),
			config.C().Storage.WriteTimeout(),
		)
		closer.AddNamed("Snapshot Writer", w.Close)

		d.writer = w
	}

	return d.writer
}

func (d *di) BuildService(ctx context.Context) BuildService {
	if d.buildService == nil {
		d.buildService = buildsvc.NewBuildService(
			d.KVRepository(ctx),
			d.SnapshotWriter(ctx),
			config.C().Storage.ReadTimeout(),
		)
	}

	return d.buildService
}

func (d *di) CompareService(ctx context.Context) CompareService {
	if d.compareService == nil {
		d.compareService = comparesvc.NewCompareService(
			d.KVRepository(ctx),
			d.SnapshotWriter(ctx),
			config.C().Storage.ReadTimeout(),
		)
	}

	return d.compareService
}

func ensureKVIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}, options.CreateIndexes())

	return err
}
